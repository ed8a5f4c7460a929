package domain

import "time"

// Declared column bounds in the store. Overlength values are rejected by
// the database, so every bounded string is truncated before insert.
const (
	MaxFieldLen   = 50
	MaxRemarksLen = 500
)

// Booking status values (canonical enum).
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusFollowUp  = "Follow-Up"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
	StatusNoShow    = "No Show"
)

// Payment status values (derived, never supplied upstream).
const (
	PaymentNotPaid       = "Not Paid"
	PaymentPartiallyPaid = "Partially Paid"
	PaymentFullyPaid     = "Fully Paid"
)

// Reservation is the canonical record persisted per booking, independent
// of whether it arrived from a spreadsheet row or the PMS API.
// booking_id is the deduplication key.
type Reservation struct {
	Property  string
	BookingID string

	BookingMadeOn *time.Time
	CheckIn       *time.Time
	CheckOut      *time.Time
	RoomNights    int

	GuestName  string
	GuestPhone string

	NoOfAdults   int
	NoOfChildren int
	NoOfInfant   int
	TotalPax     int

	RoomNo   string
	RoomType string

	RatePlans     string
	BookingSource string
	Segment       string
	ModeOfBooking string

	StaflexiStatus string
	BookingStatus  string
	PaymentStatus  string

	BookingAmount    float64
	TotalPaymentMade float64
	BalanceDue       float64

	OTAGrossAmount         float64
	OTACommission          float64
	OTATax                 float64
	OTANetAmount           float64
	RoomRevenue            float64
	TotalAmountWithService float64

	Remarks     string
	SubmittedBy string
	ModifiedBy  string
}
