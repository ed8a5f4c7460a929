package app

import (
	"fmt"
	"strconv"
	"strings"

	"flexisync/internal/domain"
)

/********** alias registry (single source of truth) **********/

// Upstream key sets drift: spreadsheet column headers, the original PMS
// field names, and at least two later PMS schema revisions all name the
// same data differently. Resolution is first-match-wins down each list,
// so no code branches on a schema version.
var bookingAliases = map[string][]string{
	"hotel_id":    {"hotel id", "hotel_id", "hotelId"},
	"hotel_name":  {"hotel name", "hotel_name", "hotelName"},
	"booking_id":  {"booking id", "booking_id", "bookingId"},
	"made_on":     {"booking_made_on", "bookingMadeOn", "booking_time", "bookingTime"},
	"guest_name":  {"customer_name", "guest_name", "guestName", "name", "user_name", "username"},
	"guest_phone": {"customer_phone", "guest_phone", "guestPhone", "phone", "user_contact", "contact"},
	"checkin":     {"checkin", "check_in", "checkIn", "cin", "displayCheckin"},
	"checkout":    {"checkout", "check_out", "checkOut", "cout", "displayCheckout"},
	"pax":         {"pax", "guests", "occupancy"},
	"room_no":     {"room ids", "room_ids", "roomId", "room_no", "roomNo", "reservation_rooms"},
	"room_type":   {"room types", "room_types", "roomType", "roomTypeName", "room_type"},
	"rate_plans":  {"rate_plans", "ratePlan", "ratePlanName", "rate_plan"},
	"source":      {"booking_source", "channel", "bookingSource", "source", "booking_source_displayname"},
	"segment":     {"segment", "market_segment", "marketSegment"},
	"status":      {"status", "booking_status", "reservation_status", "reservationStatus"},
	"amount":      {"booking_amount", "total_amount", "bookingAmount", "totalAmount", "reservation_amount"},
	"paid":        {"Total Payment Made", "total_payment_made", "payment_made", "paymentMade", "amount_paid"},
	"balance":     {"balance_due", "balanceDue", "balance"},
	"remarks":     {"special_requests", "remarks", "specialRequests", "notes"},
	"email":       {"customer_email", "guest_email", "email", "user_email"},
	"res_id":      {"reservation_id", "reservationId", "res_id"},
	"gross":       {"ota_gross_amount", "otaGrossAmount"},
	"commission":  {"ota_commission", "otaCommission"},
	"ota_tax":     {"ota_tax", "otaTax"},
	"net":         {"ota_net_amount", "otaNetAmount"},
	"revenue":     {"room_revenue", "roomRevenue"},
	"services":    {"total_amount_with_services", "totalAmountWithServices"},
	"submitted":   {"submitted_by", "submittedBy"},
	"modified":    {"modified_by", "modifiedBy"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// aliasStr: first non-empty string under a named alias set. Numeric
// values stringify, since spreadsheets hand ids over as numbers.
func aliasStr(m map[string]any, key string) string {
	for _, p := range bookingAliases[key] {
		switch v := lookupAny(m, p).(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			if v == float64(int64(v)) {
				return strconv.FormatInt(int64(v), 10)
			}
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}

// aliasFloat: non-negative amount under a named alias set, accepting
// float64/int/string (with comma decimal separators). Defaults to 0.
func aliasFloat(m map[string]any, key string) float64 {
	for _, p := range bookingAliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return nonNeg(v)
		case int:
			return nonNeg(float64(v))
		case int64:
			return nonNeg(float64(v))
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return nonNeg(f)
			}
		}
	}
	return 0
}

func aliasInt(m map[string]any, paths ...string) int {
	for _, p := range paths {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

func nonNeg(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

func aliasBool(m map[string]any, paths ...string) bool {
	for _, p := range paths {
		switch v := lookupAny(m, p).(type) {
		case bool:
			return v
		case string:
			if strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") {
				return true
			}
		}
	}
	return false
}

/********** booking transformer **********/

// PropertyDirectory maps the upstream property identifier to a display
// name. Static configuration, consulted during transformation.
type PropertyDirectory map[string]string

// ResolveName looks hotelID up in the directory, falling back to the
// substring of the free-text hotel name before its "-" separator.
func (d PropertyDirectory) ResolveName(hotelID, hotelName string) string {
	if name, ok := d[hotelID]; ok {
		return name
	}
	if hotelName != "" {
		name, _, _ := strings.Cut(hotelName, "-")
		return strings.TrimSpace(name)
	}
	return ""
}

// MapBooking turns one raw upstream booking (spreadsheet row or PMS
// object, any observed shape) into the canonical reservation record.
// No field is left unset: strings default to empty, numbers to zero,
// dates to absent. Every bounded string is truncated here, before the
// record gets anywhere near the store.
func MapBooking(raw map[string]any, dir PropertyDirectory) domain.Reservation {
	property := dir.ResolveName(aliasStr(raw, "hotel_id"), aliasStr(raw, "hotel_name"))

	checkIn := ParseDate(aliasStr(raw, "checkin"))
	checkOut := ParseDate(aliasStr(raw, "checkout"))

	adults, children, infants := ParsePax(aliasStr(raw, "pax"))
	if adults+children+infants == 0 {
		// no free-text pax field; newer PMS payloads ship bare counts
		adults = aliasInt(raw, "adults", "no_of_adults")
		children = aliasInt(raw, "children", "no_of_children")
		infants = aliasInt(raw, "infants", "infant", "no_of_infant")
	}

	source := Truncate(aliasStr(raw, "source"), domain.MaxFieldLen)

	amount := aliasFloat(raw, "amount")
	paid := aliasFloat(raw, "paid")
	balance := aliasFloat(raw, "balance")
	if balance == 0 && amount > paid {
		balance = amount - paid
	}
	// Upstream sometimes reports a balance larger than the booking
	// amount; keep the historical clamp: such a row reads as nothing
	// paid at all.
	if balance > amount {
		paid = 0
		balance = amount
	}

	status := aliasStr(raw, "status")
	if status == "" {
		status = domain.StatusConfirmed
	}

	return domain.Reservation{
		Property:  Truncate(property, domain.MaxFieldLen),
		BookingID: Truncate(aliasStr(raw, "booking_id"), domain.MaxFieldLen),

		BookingMadeOn: ParseDate(aliasStr(raw, "made_on")),
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		RoomNights:    RoomNights(checkIn, checkOut),

		GuestName:  Truncate(aliasStr(raw, "guest_name"), domain.MaxFieldLen),
		GuestPhone: Truncate(aliasStr(raw, "guest_phone"), domain.MaxFieldLen),

		NoOfAdults:   adults,
		NoOfChildren: children,
		NoOfInfant:   infants,
		TotalPax:     adults + children + infants,

		RoomNo:   Truncate(aliasStr(raw, "room_no"), domain.MaxFieldLen),
		RoomType: Truncate(aliasStr(raw, "room_type"), domain.MaxFieldLen),

		RatePlans:     Truncate(aliasStr(raw, "rate_plans"), domain.MaxFieldLen),
		BookingSource: source,
		Segment:       Truncate(aliasStr(raw, "segment"), domain.MaxFieldLen),
		ModeOfBooking: source,

		StaflexiStatus: Truncate(status, domain.MaxFieldLen),
		BookingStatus:  domain.StatusPending,
		PaymentStatus:  DerivePaymentStatus(paid, amount),

		BookingAmount:    amount,
		TotalPaymentMade: paid,
		BalanceDue:       balance,

		OTAGrossAmount:         aliasFloat(raw, "gross"),
		OTACommission:          aliasFloat(raw, "commission"),
		OTATax:                 aliasFloat(raw, "ota_tax"),
		OTANetAmount:           aliasFloat(raw, "net"),
		RoomRevenue:            aliasFloat(raw, "revenue"),
		TotalAmountWithService: aliasFloat(raw, "services"),

		Remarks:     Truncate(buildRemarks(raw), domain.MaxRemarksLen),
		SubmittedBy: Truncate(aliasStr(raw, "submitted"), domain.MaxFieldLen),
		ModifiedBy:  Truncate(aliasStr(raw, "modified"), domain.MaxFieldLen),
	}
}

// buildRemarks joins the free-text request with whatever optional
// upstream signals are present: contact email, the PMS reservation id,
// and the group/room-lock flags.
func buildRemarks(raw map[string]any) string {
	var parts []string
	if s := aliasStr(raw, "remarks"); s != "" {
		parts = append(parts, s)
	}
	if s := aliasStr(raw, "email"); s != "" {
		parts = append(parts, fmt.Sprintf("Email: %s", s))
	}
	if s := aliasStr(raw, "res_id"); s != "" {
		parts = append(parts, fmt.Sprintf("Res ID: %s", s))
	}
	if aliasBool(raw, "group_booking", "isGroupBooking") {
		parts = append(parts, "Group booking")
	}
	if aliasBool(raw, "locked", "isLocked", "room_locked") {
		parts = append(parts, "Room locked")
	}
	return strings.Join(parts, " | ")
}
