package domain

import (
	"context"
	"time"
)

type ListingRepository interface {
	ListListings(ctx context.Context, f ListingFilter) ([]ListingSummary, error)
	CountListings(ctx context.Context, f ListingFilter) (int64, error)
	GetListing(ctx context.Context, id int64) (ListingDetail, error)
	ListAmenities(ctx context.Context, listingID int64) ([]string, error)
	ListPhotos(ctx context.Context, listingID int64) ([]string, error)
	ListReviews(ctx context.Context, listingID int64, limit int) ([]Review, error)
	GetListingPrice(ctx context.Context, id int64) (float64, error)
	SuggestNeighbourhoods(ctx context.Context, q string, limit int) ([]string, error)
}

type HostRepository interface {
	GetHost(ctx context.Context, id int64) (Host, error)
	ListHostListings(ctx context.Context, hostID int64, limit int) ([]ListingSummary, error)
}

type BookingRepository interface {
	// CreateBooking checks availability and inserts atomically. It returns
	// ErrDatesUnavailable when a non-cancelled booking overlaps b's range.
	CreateBooking(ctx context.Context, b Booking) (int64, error)
	GetBooking(ctx context.Context, id int64) (Booking, error)
	ListGuestBookings(ctx context.Context, guestID int64, pg PageQuery) ([]Booking, error)
	CountGuestBookings(ctx context.Context, guestID int64) (int64, error)
	// CancelBooking flips a confirmed booking to cancelled. It returns
	// ErrAlreadyCancelled when the booking was no longer confirmed.
	CancelBooking(ctx context.Context, id int64) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, u User) (int64, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
}

// CatalogRepository is the write side used by the seeder.
type CatalogRepository interface {
	UpsertHost(ctx context.Context, h CatalogHost) error
	UpsertListing(ctx context.Context, l CatalogListing) error
	ReplaceAmenities(ctx context.Context, listingID int64, names []string) error
	ReplacePhotos(ctx context.Context, listingID int64, urls []string) error
	UpsertReviews(ctx context.Context, listingID int64, rs []CatalogReview) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(u User) (token string, expiresAt time.Time, err error)
	Verify(token string) (Claims, error)
}

type PageQuery struct {
	Page  int
	Limit int
}

const (
	DefaultBookingLimit = 20
	MaxBookingLimit     = 100
)

func (p PageQuery) Normalize() PageQuery {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultBookingLimit
	}
	if p.Limit > MaxBookingLimit {
		p.Limit = MaxBookingLimit
	}
	return p
}

func (p PageQuery) Offset() int { return (p.Page - 1) * p.Limit }
