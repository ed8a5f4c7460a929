package app

import (
	"strings"
	"testing"
	"time"

	"flexisync/internal/domain"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParseDate_Formats(t *testing.T) {
	cases := []struct {
		in   string
		want *time.Time
	}{
		{"05/12/2025 14:30:00", date(2025, 12, 5)},
		{"05/12/2025", date(2025, 12, 5)},
		{"05-12-2025 14:30:00", date(2025, 12, 5)},
		{"2025-12-05T14:30:00Z", date(2025, 12, 5)},
		{"2025-12-05T14:30:00", date(2025, 12, 5)},
		{"2025-12-05", date(2025, 12, 5)},
		{"", nil},
		{"not a date", nil},
		{"31/02/2025", nil},
	}
	for _, c := range cases {
		got := ParseDate(c.in)
		if (got == nil) != (c.want == nil) {
			t.Fatalf("ParseDate(%q) = %v, want %v", c.in, got, c.want)
		}
		if got != nil {
			if got.Year() != c.want.Year() || got.Month() != c.want.Month() || got.Day() != c.want.Day() {
				t.Fatalf("ParseDate(%q) = %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestParsePax(t *testing.T) {
	cases := []struct {
		in      string
		a, c, i int
	}{
		{"Adults: 2, Children:1,Infant: 0", 2, 1, 0},
		{"Adults:abc", 0, 0, 0},
		{"", 0, 0, 0},
		{"Adults: 3", 3, 0, 0},
		{"Children: 2 , Infant: 1", 0, 2, 1},
		{"Adults: 1, Adults: 2", 3, 0, 0},
		{"something else entirely", 0, 0, 0},
	}
	for _, c := range cases {
		a, ch, in := ParsePax(c.in)
		if a != c.a || ch != c.c || in != c.i {
			t.Fatalf("ParsePax(%q) = (%d,%d,%d), want (%d,%d,%d)", c.in, a, ch, in, c.a, c.c, c.i)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("", 50); got != "" {
		t.Fatalf("empty input must pass through, got %q", got)
	}
	if got := Truncate("short", 50); got != "short" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("x", 80)
	if got := Truncate(long, 50); len(got) != 50 {
		t.Fatalf("len = %d, want 50", len(got))
	}
	// rune boundary safety
	if got := Truncate(strings.Repeat("é", 60), 50); len([]rune(got)) != 50 {
		t.Fatalf("rune len = %d, want 50", len([]rune(got)))
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	cases := []struct {
		paid, owed float64
		want       string
	}{
		{100, 100, domain.PaymentFullyPaid},
		{150, 100, domain.PaymentFullyPaid},
		{50, 100, domain.PaymentPartiallyPaid},
		{0, 100, domain.PaymentNotPaid},
		{0, 0, domain.PaymentNotPaid},
	}
	for _, c := range cases {
		if got := DerivePaymentStatus(c.paid, c.owed); got != c.want {
			t.Fatalf("DerivePaymentStatus(%v, %v) = %q, want %q", c.paid, c.owed, got, c.want)
		}
	}
}

func TestRoomNights(t *testing.T) {
	if got := RoomNights(date(2025, 12, 1), date(2025, 12, 5)); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
	if got := RoomNights(nil, date(2025, 12, 5)); got != 0 {
		t.Fatalf("missing check-in: got %d, want 0", got)
	}
	if got := RoomNights(date(2025, 12, 1), nil); got != 0 {
		t.Fatalf("missing check-out: got %d, want 0", got)
	}
	// inverted window clamps to zero
	if got := RoomNights(date(2025, 12, 5), date(2025, 12, 1)); got != 0 {
		t.Fatalf("inverted window: got %d, want 0", got)
	}
}
