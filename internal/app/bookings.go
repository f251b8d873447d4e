package app

import (
	"context"
	"time"

	"toronto_stays/internal/domain"
)

type BookingService struct {
	repo domain.BookingRepository
	now  func() time.Time
}

func NewBookingService(r domain.BookingRepository) *BookingService {
	return &BookingService{repo: r, now: time.Now}
}

// WithClock replaces the time source used by the cancellation window.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

type CreateBookingInput struct {
	ListingID  int64
	GuestID    int64
	StartDate  string
	EndDate    string
	TotalPrice float64
}

// Create reserves [StartDate, EndDate) for the guest when no live booking
// of the listing overlaps it.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (int64, error) {
	if in.ListingID <= 0 || in.GuestID <= 0 || in.StartDate == "" || in.EndDate == "" || in.TotalPrice <= 0 {
		return 0, domain.Invalid("Missing required fields")
	}
	r, err := domain.ParseDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateBooking(ctx, domain.Booking{
		ListingID:  in.ListingID,
		GuestID:    in.GuestID,
		StartDate:  r.Start,
		EndDate:    r.End,
		TotalPrice: in.TotalPrice,
		Status:     domain.StatusConfirmed,
	})
	if err != nil {
		return 0, storageErr("create booking", err)
	}
	return id, nil
}

// ListForGuest returns one page of the guest's bookings, newest first, and the
// guest's total booking count.
func (s *BookingService) ListForGuest(ctx context.Context, guestID int64, pg domain.PageQuery) ([]domain.Booking, int64, error) {
	if guestID <= 0 {
		return nil, 0, domain.Invalid("Missing guestId")
	}
	pg = pg.Normalize()
	total, err := s.repo.CountGuestBookings(ctx, guestID)
	if err != nil {
		return nil, 0, storageErr("count guest bookings", err)
	}
	out, err := s.repo.ListGuestBookings(ctx, guestID, pg)
	if err != nil {
		return nil, 0, storageErr("list guest bookings", err)
	}
	if out == nil {
		out = []domain.Booking{}
	}
	return out, total, nil
}

// Cancel moves a confirmed booking owned by guestID to cancelled, provided
// check-in is more than three days away.
func (s *BookingService) Cancel(ctx context.Context, bookingID, guestID int64) error {
	if bookingID <= 0 {
		return domain.Invalid("Booking ID is required")
	}
	b, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return storageErr("get booking", err)
	}
	if b.GuestID != guestID {
		return domain.ErrForbidden
	}
	if err := b.CheckCancellable(s.now()); err != nil {
		return err
	}
	return storageErr("cancel booking", s.repo.CancelBooking(ctx, bookingID))
}
