package stayflexi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"flexisync/internal/adapters/stayflexi"
	"flexisync/internal/domain"
)

func newServer(t *testing.T, login http.HandlerFunc, bookings http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", login)
	mux.HandleFunc("/core/api/v1/reservation/navigationGetRoomBookings", bookings)
	return httptest.NewServer(mux)
}

func okLogin(token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] == "" || body["password"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"token": token})
	}
}

func fetch(t *testing.T, ts *httptest.Server) ([]map[string]any, error) {
	t.Helper()
	sess := stayflexi.NewSession("ops@example.com", "secret")
	cl, err := stayflexi.New(ts.URL, sess, 100)
	if err != nil {
		t.Fatalf("client init: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return cl.FetchBookings(ctx, "28482",
		time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
}

func TestFetchBookings_FlatList(t *testing.T) {
	ts := newServer(t, okLogin("tok-1"), func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["hotelId"] != "28482" || body["from"] != "2025-12-01" {
			t.Errorf("unexpected body: %v", body)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{{"bookingId": "A"}, {"bookingId": "B"}})
	})
	defer ts.Close()

	got, err := fetch(t, ts)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 2 || got[0]["bookingId"] != "A" {
		t.Fatalf("got %+v", got)
	}
}

func TestFetchBookings_BookingsKeyShape(t *testing.T) {
	ts := newServer(t, okLogin("tok-1"), func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"bookings": []map[string]any{{"bookingId": "A"}},
		})
	})
	defer ts.Close()

	got, err := fetch(t, ts)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 1 || got[0]["bookingId"] != "A" {
		t.Fatalf("got %+v", got)
	}
}

func TestFetchBookings_NestedRoomShape(t *testing.T) {
	ts := newServer(t, okLogin("tok-1"), func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"allRoomReservations": []map[string]any{
					{
						"roomId":       "101",
						"roomTypeName": "Deluxe",
						"reservations": []map[string]any{
							{"bookingId": "A", "reservationStatus": "CONFIRMED"},
							{"bookingId": "BLK", "reservationStatus": "BLOCKED"},
						},
					},
					{
						"roomId":       "102",
						"roomTypeName": "Suite",
						"reservations": []map[string]any{
							{"bookingId": "B", "reservationStatus": "CHECKED_IN"},
						},
					},
				},
			},
		})
	})
	defer ts.Close()

	got, err := fetch(t, ts)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	// the admin block is filtered out entirely
	if len(got) != 2 {
		t.Fatalf("got %d entries: %+v", len(got), got)
	}
	if got[0]["bookingId"] != "A" || got[0]["roomId"] != "101" || got[0]["roomType"] != "Deluxe" {
		t.Fatalf("room metadata not merged: %+v", got[0])
	}
	if got[1]["roomId"] != "102" || got[1]["roomType"] != "Suite" {
		t.Fatalf("room metadata not merged: %+v", got[1])
	}
}

func TestFetchBookings_ReauthOnceThenSuccess(t *testing.T) {
	var logins, fetches int32
	ts := newServer(t,
		func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt32(&logins, 1)
			_ = json.NewEncoder(w).Encode(map[string]any{"accessToken": map[int32]string{1: "stale", 2: "fresh"}[n]})
		},
		func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&fetches, 1)
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode([]map[string]any{{"bookingId": "A"}})
		})
	defer ts.Close()

	got, err := fetch(t, ts)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	if atomic.LoadInt32(&logins) != 2 || atomic.LoadInt32(&fetches) != 2 {
		t.Fatalf("logins=%d fetches=%d, want 2/2", logins, fetches)
	}
}

func TestFetchBookings_SecondUnauthorizedIsFinal(t *testing.T) {
	var fetches int32
	ts := newServer(t, okLogin("tok"), func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer ts.Close()

	_, err := fetch(t, ts)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
	if atomic.LoadInt32(&fetches) != 2 {
		t.Fatalf("fetches = %d, want exactly one retry", fetches)
	}
}

func TestFetchBookings_NoCredentials(t *testing.T) {
	sess := stayflexi.NewSession("", "")
	cl, err := stayflexi.New("http://localhost:0", sess, 100)
	if err != nil {
		t.Fatalf("client init: %v", err)
	}
	_, err = cl.FetchBookings(context.Background(), "1", time.Now(), time.Now())
	if !errors.Is(err, stayflexi.ErrNoCredentials) {
		t.Fatalf("err = %v, want ErrNoCredentials", err)
	}
	// a missing credential pair is an auth condition, so the sync engine
	// aborts the run instead of counting empty units
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestFetchBookings_TransportErrorSurfacedImmediately(t *testing.T) {
	ts := newServer(t, okLogin("tok"), func(w http.ResponseWriter, r *http.Request) {})
	base := ts.URL
	ts.Close() // connection refused from here on

	sess := stayflexi.NewSession("ops@example.com", "secret")
	cl, err := stayflexi.New(base, sess, 100)
	if err != nil {
		t.Fatalf("client init: %v", err)
	}
	_, err = cl.FetchBookings(context.Background(), "1", time.Now(), time.Now())
	if err == nil || errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
