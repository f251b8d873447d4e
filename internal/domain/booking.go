package domain

import (
	"math"
	"time"
)

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// DateLayout is the wire and storage format of booking dates.
const DateLayout = "2006-01-02"

// CancellationWindowDays is the minimum lead time before check-in. A booking
// can be cancelled only while more than this many days remain.
const CancellationWindowDays = 3

type Booking struct {
	ID         int64
	ListingID  int64
	GuestID    int64
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice float64
	Status     BookingStatus
	CreatedAt  time.Time

	// Filled by guest listings only.
	ListingName       string
	ListingPictureURL *string
}

// DateRange is a stay from check-in (Start) to check-out (End).
type DateRange struct{ Start, End time.Time }

// ParseDateRange parses two YYYY-MM-DD dates and requires start < end.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, Invalid("startDate must be YYYY-MM-DD")
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, Invalid("endDate must be YYYY-MM-DD")
	}
	if !s.Before(e) {
		return DateRange{}, Invalid("endDate must be after startDate")
	}
	return DateRange{Start: s, End: e}, nil
}

func ParseDate(v string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, v, time.UTC)
}

// Overlaps reports whether r collides with an existing booking's range.
// Bounds are inclusive: a stay starting on another stay's check-out date
// collides with it.
func (r DateRange) Overlaps(existing DateRange) bool {
	startsDuring := !existing.Start.After(r.Start) && !existing.End.Before(r.Start)
	endsDuring := !existing.Start.After(r.End) && !existing.End.Before(r.End)
	contains := !existing.Start.Before(r.Start) && !existing.End.After(r.End)
	return startsDuring || endsDuring || contains
}

// Nights is the number of calendar nights in the range.
func (r DateRange) Nights() int {
	return daysBetween(r.Start, r.End)
}

// QuoteTotal prices a stay at pricePerNight, rounded to cents.
func QuoteTotal(pricePerNight float64, nights int) float64 {
	return math.Round(pricePerNight*float64(nights)*100) / 100
}

// DaysUntil counts whole calendar days from now to start, comparing UTC dates.
// The time of day on either side is ignored.
func DaysUntil(start, now time.Time) int {
	return daysBetween(now, start)
}

func daysBetween(from, to time.Time) int {
	f := truncateDay(from)
	t := truncateDay(to)
	return int(t.Sub(f).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckCancellable applies the cancel transition guards in order.
func (b Booking) CheckCancellable(now time.Time) error {
	if b.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if DaysUntil(b.StartDate, now) <= CancellationWindowDays {
		return ErrCancellationWindowPassed
	}
	return nil
}
