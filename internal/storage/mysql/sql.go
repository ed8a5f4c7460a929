package mysql

const insertReservationSQL = `
INSERT INTO online_reservations
  (property, booking_id, booking_made_on, guest_name, guest_phone,
   check_in, check_out, room_nights,
   no_of_adults, no_of_children, no_of_infant, total_pax,
   room_no, room_type, rate_plans, booking_source, segment, mode_of_booking,
   staflexi_status, booking_status, payment_status,
   booking_amount, total_payment_made, balance_due,
   ota_gross_amount, ota_commission, ota_tax, ota_net_amount,
   room_revenue, total_amount_with_services,
   remarks, submitted_by, modified_by)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Dashboard read: newest stays first. Filters are optional; a NULL
// parameter disables its clause.
const listReservationsSQL = `
SELECT
  property, booking_id, booking_made_on, guest_name, guest_phone,
  check_in, check_out, room_nights,
  no_of_adults, no_of_children, no_of_infant, total_pax,
  room_no, room_type, rate_plans, booking_source, segment, mode_of_booking,
  staflexi_status, booking_status, payment_status,
  booking_amount, total_payment_made, balance_due,
  ota_gross_amount, ota_commission, ota_tax, ota_net_amount,
  room_revenue, total_amount_with_services,
  remarks, submitted_by, modified_by
FROM online_reservations
WHERE (? IS NULL OR check_in >= ?)
  AND (? IS NULL OR check_in <= ?)
  AND (? IS NULL OR booking_status = ?)
  AND (? IS NULL OR property = ?)
ORDER BY check_in DESC, booking_id DESC
`

const listBookingIDsSQL = `SELECT booking_id FROM online_reservations`
