package app

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"flexisync/internal/domain"
)

// dateLayouts are tried in order. Spreadsheet exports use the slash
// forms, the PMS sends its own dash form, and newer PMS payloads use
// ISO-8601 with or without a zone.
var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006",
	"02-01-2006 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an upstream date string, trying each known layout in
// priority order. Returns nil when nothing matches; never fails hard.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

var paxSep = regexp.MustCompile(`\s*,\s*`)

// ParsePax extracts adult/child/infant counts from a free-text string of
// the shape "Adults: N, Children: N, Infant: N". Whitespace around
// separators is arbitrary. A present but non-numeric count is treated as
// zero; absent fields default to zero; unrecognized tokens are ignored.
func ParsePax(s string) (adults, children, infants int) {
	if strings.TrimSpace(s) == "" {
		return 0, 0, 0
	}
	for _, part := range strings.Split(paxSep.ReplaceAllString(s, ","), ",") {
		part = strings.TrimSpace(part)
		switch {
		case strings.Contains(part, "Adults:"):
			adults += paxCount(part, "Adults:")
		case strings.Contains(part, "Children:"):
			children += paxCount(part, "Children:")
		case strings.Contains(part, "Infant:"):
			infants += paxCount(part, "Infant:")
		}
	}
	return adults, children, infants
}

func paxCount(part, label string) int {
	_, after, _ := strings.Cut(part, label)
	n, err := strconv.Atoi(strings.TrimSpace(after))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Truncate caps s to max characters. Empty input passes through.
func Truncate(s string, max int) string {
	if s == "" || len(s) <= max {
		return s
	}
	// cut on a rune boundary so multi-byte guest names stay valid
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// DerivePaymentStatus classifies the paid amount against the amount
// owed. The zero-paid check runs first so (0, 0) reads as Not Paid
// rather than fully paid.
func DerivePaymentStatus(paid, owed float64) string {
	switch {
	case paid <= 0:
		return domain.PaymentNotPaid
	case paid >= owed:
		return domain.PaymentFullyPaid
	default:
		return domain.PaymentPartiallyPaid
	}
}

// RoomNights is the whole-day span between check-in and check-out,
// 0 when either date is missing or the window is inverted.
func RoomNights(checkIn, checkOut *time.Time) int {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	n := int(out.Sub(in).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
