package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toronto_stays/internal/adapters/observability"
	"toronto_stays/internal/domain"
)

type bookingRow struct {
	ID         int64          `db:"id"`
	ListingID  int64          `db:"listing_id"`
	GuestID    int64          `db:"guest_id"`
	StartDate  time.Time      `db:"start_date"`
	EndDate    time.Time      `db:"end_date"`
	TotalPrice float64        `db:"total_price"`
	Status     string         `db:"status"`
	CreatedAt  time.Time      `db:"created_at"`
	Name       sql.NullString `db:"listing_name"`
	PictureURL sql.NullString `db:"picture_url"`
}

func (r bookingRow) toDomain() domain.Booking {
	return domain.Booking{
		ID:                r.ID,
		ListingID:         r.ListingID,
		GuestID:           r.GuestID,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		TotalPrice:        r.TotalPrice,
		Status:            domain.BookingStatus(r.Status),
		CreatedAt:         r.CreatedAt,
		ListingName:       r.Name.String,
		ListingPictureURL: nullStr(r.PictureURL),
	}
}

// CreateBooking runs lock, overlap check and insert in one transaction. The
// listing row lock makes concurrent creates for the same listing take turns.
func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (id int64, err error) {
	defer observability.ObserveDB("create_booking", time.Now())

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var locked int64
	if err = tx.GetContext(ctx, &locked, lockListingSQL, b.ListingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.Invalid("listing does not exist")
		}
		return 0, err
	}

	start, end := dateStr(b.StartDate), dateStr(b.EndDate)
	var conflicts int
	if err = tx.GetContext(ctx, &conflicts, countOverlapsSQL,
		b.ListingID, start, start, end, end, start, end); err != nil {
		return 0, err
	}
	if conflicts > 0 {
		err = domain.ErrDatesUnavailable
		return 0, err
	}

	res, err := tx.ExecContext(ctx, insertBookingSQL,
		b.ListingID, b.GuestID, start, end, b.TotalPrice, string(b.Status))
	if err != nil {
		switch {
		case isBadReference(err):
			err = domain.Invalid("unknown listing or guest")
		case isOutOfRange(err):
			err = domain.Invalid("totalPrice is out of range")
		}
		return 0, err
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	defer observability.ObserveDB("get_booking", time.Now())
	var row bookingRow
	if err := r.db.GetContext(ctx, &row, getBookingSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}
	return row.toDomain(), nil
}

func (r *Repo) ListGuestBookings(ctx context.Context, guestID int64, pg domain.PageQuery) ([]domain.Booking, error) {
	defer observability.ObserveDB("list_guest_bookings", time.Now())
	var rows []bookingRow
	if err := r.db.SelectContext(ctx, &rows, listGuestBookingsSQL, guestID, pg.Limit, pg.Offset()); err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *Repo) CountGuestBookings(ctx context.Context, guestID int64) (int64, error) {
	defer observability.ObserveDB("count_guest_bookings", time.Now())
	var n int64
	if err := r.db.GetContext(ctx, &n, countGuestBookingsSQL, guestID); err != nil {
		return 0, err
	}
	return n, nil
}

// CancelBooking is a conditional update; losing a race to another cancel
// reports ErrAlreadyCancelled.
func (r *Repo) CancelBooking(ctx context.Context, id int64) error {
	defer observability.ObserveDB("cancel_booking", time.Now())
	res, err := r.db.ExecContext(ctx, cancelBookingSQL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAlreadyCancelled
	}
	return nil
}
