package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"toronto_stays/internal/domain"
)

// ---- cache ----

// fakeCache round-trips through JSON like the redis adapter does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

// ---- listings & hosts ----

type fakeListings struct {
	total       int64
	page        []domain.ListingSummary
	listCalls   int
	detail      domain.ListingDetail
	amenities   []string
	photos      []string
	reviews     []domain.Review
	suggestions []string
	suggestHits int
	price       float64
	err         error
}

func (f *fakeListings) ListListings(ctx context.Context, lf domain.ListingFilter) ([]domain.ListingSummary, error) {
	f.listCalls++
	return f.page, f.err
}
func (f *fakeListings) CountListings(ctx context.Context, lf domain.ListingFilter) (int64, error) {
	return f.total, f.err
}
func (f *fakeListings) GetListing(ctx context.Context, id int64) (domain.ListingDetail, error) {
	if f.detail.ID != id {
		return domain.ListingDetail{}, domain.ErrNotFound
	}
	return f.detail, nil
}
func (f *fakeListings) ListAmenities(ctx context.Context, id int64) ([]string, error) {
	return f.amenities, nil
}
func (f *fakeListings) ListPhotos(ctx context.Context, id int64) ([]string, error) {
	return f.photos, nil
}
func (f *fakeListings) ListReviews(ctx context.Context, id int64, limit int) ([]domain.Review, error) {
	return f.reviews, nil
}
func (f *fakeListings) GetListingPrice(ctx context.Context, id int64) (float64, error) {
	if f.detail.ID != id {
		return 0, domain.ErrNotFound
	}
	return f.price, nil
}
func (f *fakeListings) SuggestNeighbourhoods(ctx context.Context, q string, limit int) ([]string, error) {
	f.suggestHits++
	return f.suggestions, f.err
}

type fakeHosts struct {
	host     domain.Host
	listings []domain.ListingSummary
	gotLimit int
}

func (f *fakeHosts) GetHost(ctx context.Context, id int64) (domain.Host, error) {
	if f.host.ID != id {
		return domain.Host{}, domain.ErrNotFound
	}
	return f.host, nil
}
func (f *fakeHosts) ListHostListings(ctx context.Context, hostID int64, limit int) ([]domain.ListingSummary, error) {
	f.gotLimit = limit
	return f.listings, nil
}

// ---- bookings ----

// fakeBookings serialises create like the MySQL repo's row lock does.
type fakeBookings struct {
	mu     sync.Mutex
	rows   map[int64]domain.Booking
	nextID int64
}

func newFakeBookings() *fakeBookings { return &fakeBookings{rows: map[int64]domain.Booking{}} }

func (f *fakeBookings) CreateBooking(ctx context.Context, b domain.Booking) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := domain.DateRange{Start: b.StartDate, End: b.EndDate}
	for _, ex := range f.rows {
		if ex.ListingID != b.ListingID || ex.Status == domain.StatusCancelled {
			continue
		}
		if want.Overlaps(domain.DateRange{Start: ex.StartDate, End: ex.EndDate}) {
			return 0, domain.ErrDatesUnavailable
		}
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	f.rows[b.ID] = b
	return b.ID, nil
}

func (f *fakeBookings) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookings) ListGuestBookings(ctx context.Context, guestID int64, pg domain.PageQuery) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for id := f.nextID; id > 0; id-- {
		if b, ok := f.rows[id]; ok && b.GuestID == guestID {
			out = append(out, b)
		}
	}
	lo := pg.Offset()
	if lo >= len(out) {
		return nil, nil
	}
	hi := lo + pg.Limit
	if hi > len(out) {
		hi = len(out)
	}
	return out[lo:hi], nil
}

func (f *fakeBookings) CountGuestBookings(ctx context.Context, guestID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.rows {
		if b.GuestID == guestID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookings) CancelBooking(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[id]
	if !ok || b.Status != domain.StatusConfirmed {
		return domain.ErrAlreadyCancelled
	}
	b.Status = domain.StatusCancelled
	f.rows[id] = b
	return nil
}

// ---- accounts ----

type fakeUsers struct {
	mu    sync.Mutex
	users []domain.User
	err   error
}

func (f *fakeUsers) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = int64(len(f.users) + 1)
	f.users = append(f.users, u)
	return u.ID, nil
}
func (f *fakeUsers) UserExists(ctx context.Context, username, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.Username == username || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeUsers) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

type fakeHasher struct{ compares int }

func (h *fakeHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (h *fakeHasher) Compare(hash, pw string) error {
	h.compares++
	if hash != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(u domain.User) (string, time.Time, error) {
	return "tok-" + u.Username, time.Now().Add(time.Hour), nil
}
func (fakeTokens) Verify(tok string) (domain.Claims, error) {
	if !strings.HasPrefix(tok, "tok-") {
		return domain.Claims{}, errors.New("bad token")
	}
	return domain.Claims{UserID: 1, Username: strings.TrimPrefix(tok, "tok-")}, nil
}

// ---- catalog ----

type fakeCatalog struct {
	hosts     []int64
	listings  []int64
	amenities map[int64][]string
	photos    map[int64][]string
	reviews   map[int64]int
	failOn    int64
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{amenities: map[int64][]string{}, photos: map[int64][]string{}, reviews: map[int64]int{}}
}

func (f *fakeCatalog) UpsertHost(ctx context.Context, h domain.CatalogHost) error {
	f.hosts = append(f.hosts, h.ID)
	return nil
}
func (f *fakeCatalog) UpsertListing(ctx context.Context, l domain.CatalogListing) error {
	if l.ID == f.failOn {
		return errors.New("boom")
	}
	f.listings = append(f.listings, l.ID)
	return nil
}
func (f *fakeCatalog) ReplaceAmenities(ctx context.Context, id int64, names []string) error {
	f.amenities[id] = names
	return nil
}
func (f *fakeCatalog) ReplacePhotos(ctx context.Context, id int64, urls []string) error {
	f.photos[id] = urls
	return nil
}
func (f *fakeCatalog) UpsertReviews(ctx context.Context, id int64, rs []domain.CatalogReview) error {
	f.reviews[id] += len(rs)
	return nil
}

func ptr[T any](v T) *T { return &v }
