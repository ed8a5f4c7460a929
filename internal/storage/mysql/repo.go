package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"flexisync/internal/domain"
)

const duplicateEntryErrNo = 1062

func valDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Insert persists one reservation. A unique-key violation on booking_id
// maps to domain.ErrDuplicate so callers can count it as a skip.
func (r *Repo) Insert(ctx context.Context, res domain.Reservation) error {
	_, err := r.db.ExecContext(ctx, insertReservationSQL,
		res.Property,
		res.BookingID,
		valDate(res.BookingMadeOn),
		res.GuestName,
		res.GuestPhone,
		valDate(res.CheckIn),
		valDate(res.CheckOut),
		res.RoomNights,
		res.NoOfAdults,
		res.NoOfChildren,
		res.NoOfInfant,
		res.TotalPax,
		res.RoomNo,
		res.RoomType,
		res.RatePlans,
		res.BookingSource,
		res.Segment,
		res.ModeOfBooking,
		res.StaflexiStatus,
		res.BookingStatus,
		res.PaymentStatus,
		res.BookingAmount,
		res.TotalPaymentMade,
		res.BalanceDue,
		res.OTAGrossAmount,
		res.OTACommission,
		res.OTATax,
		res.OTANetAmount,
		res.RoomRevenue,
		res.TotalAmountWithService,
		res.Remarks,
		res.SubmittedBy,
		res.ModifiedBy,
	)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == duplicateEntryErrNo {
		return domain.ErrDuplicate
	}
	return err
}

func (r *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Reservation, error) {
	from, to := valDate(f.From), valDate(f.To)
	var status, property any
	if f.Status != "" {
		status = f.Status
	}
	if f.Property != "" {
		property = f.Property
	}

	rows, err := r.db.QueryContext(ctx, listReservationsSQL,
		from, from, to, to, status, status, property, property)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		var madeOn, checkIn, checkOut sql.NullTime
		if err := rows.Scan(
			&res.Property,
			&res.BookingID,
			&madeOn,
			&res.GuestName,
			&res.GuestPhone,
			&checkIn,
			&checkOut,
			&res.RoomNights,
			&res.NoOfAdults,
			&res.NoOfChildren,
			&res.NoOfInfant,
			&res.TotalPax,
			&res.RoomNo,
			&res.RoomType,
			&res.RatePlans,
			&res.BookingSource,
			&res.Segment,
			&res.ModeOfBooking,
			&res.StaflexiStatus,
			&res.BookingStatus,
			&res.PaymentStatus,
			&res.BookingAmount,
			&res.TotalPaymentMade,
			&res.BalanceDue,
			&res.OTAGrossAmount,
			&res.OTACommission,
			&res.OTATax,
			&res.OTANetAmount,
			&res.RoomRevenue,
			&res.TotalAmountWithService,
			&res.Remarks,
			&res.SubmittedBy,
			&res.ModifiedBy,
		); err != nil {
			return nil, err
		}
		if madeOn.Valid {
			t := madeOn.Time
			res.BookingMadeOn = &t
		}
		if checkIn.Valid {
			t := checkIn.Time
			res.CheckIn = &t
		}
		if checkOut.Valid {
			t := checkOut.Time
			res.CheckOut = &t
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// ListBookingIDs loads the full deduplication snapshot for a sync run.
func (r *Repo) ListBookingIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, listBookingIDsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}
