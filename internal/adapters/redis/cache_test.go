package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "flexisync/internal/adapters/redis"
	"flexisync/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var missed []domain.Reservation
	ok, err := c.Get(ctx, "reservations::::", &missed)
	if err != nil || ok {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	in := []domain.Reservation{{BookingID: "SF-1", Property: "Sea Breeze Resort", TotalPax: 3}}
	if err := c.Set(ctx, "reservations::::", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out []domain.Reservation
	ok, err = c.Get(ctx, "reservations::::", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].BookingID != "SF-1" || out[0].TotalPax != 3 {
		t.Fatalf("got %+v", out)
	}

	if err := c.Del(ctx, "reservations::::"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "reservations::::", &out)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}
