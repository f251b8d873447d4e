package httpserver_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"toronto_stays/internal/domain"
)

type memListings struct {
	total       int64
	page        []domain.ListingSummary
	lastFilter  domain.ListingFilter
	details     map[int64]domain.ListingDetail
	suggestions []string
	err         error
}

func (m *memListings) ListListings(ctx context.Context, f domain.ListingFilter) ([]domain.ListingSummary, error) {
	m.lastFilter = f
	return m.page, m.err
}
func (m *memListings) CountListings(ctx context.Context, f domain.ListingFilter) (int64, error) {
	m.lastFilter = f
	return m.total, m.err
}
func (m *memListings) GetListing(ctx context.Context, id int64) (domain.ListingDetail, error) {
	d, ok := m.details[id]
	if !ok {
		return domain.ListingDetail{}, domain.ErrNotFound
	}
	return d, nil
}
func (m *memListings) ListAmenities(ctx context.Context, id int64) ([]string, error) {
	return []string{"Wifi"}, nil
}
func (m *memListings) ListPhotos(ctx context.Context, id int64) ([]string, error) {
	return []string{"gallery.jpg"}, nil
}
func (m *memListings) ListReviews(ctx context.Context, id int64, limit int) ([]domain.Review, error) {
	return nil, nil
}
func (m *memListings) GetListingPrice(ctx context.Context, id int64) (float64, error) {
	d, ok := m.details[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return d.Price, nil
}
func (m *memListings) SuggestNeighbourhoods(ctx context.Context, q string, limit int) ([]string, error) {
	return m.suggestions, m.err
}

type memHosts struct{ hosts map[int64]domain.Host }

func (m *memHosts) GetHost(ctx context.Context, id int64) (domain.Host, error) {
	h, ok := m.hosts[id]
	if !ok {
		return domain.Host{}, domain.ErrNotFound
	}
	return h, nil
}
func (m *memHosts) ListHostListings(ctx context.Context, hostID int64, limit int) ([]domain.ListingSummary, error) {
	return nil, nil
}

type memBookings struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Booking
}

func (m *memBookings) CreateBooking(ctx context.Context, b domain.Booking) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows == nil {
		m.rows = map[int64]domain.Booking{}
	}
	want := domain.DateRange{Start: b.StartDate, End: b.EndDate}
	for _, ex := range m.rows {
		if ex.ListingID == b.ListingID && ex.Status != domain.StatusCancelled &&
			want.Overlaps(domain.DateRange{Start: ex.StartDate, End: ex.EndDate}) {
			return 0, domain.ErrDatesUnavailable
		}
	}
	m.nextID++
	b.ID = m.nextID
	b.ListingName = "Listing"
	m.rows[b.ID] = b
	return b.ID, nil
}
func (m *memBookings) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}
func (m *memBookings) ListGuestBookings(ctx context.Context, guestID int64, pg domain.PageQuery) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for _, b := range m.rows {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
func (m *memBookings) CountGuestBookings(ctx context.Context, guestID int64) (int64, error) {
	list, _ := m.ListGuestBookings(ctx, guestID, domain.PageQuery{})
	return int64(len(list)), nil
}
func (m *memBookings) CancelBooking(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.rows[id]
	if b.Status == domain.StatusCancelled {
		return domain.ErrAlreadyCancelled
	}
	b.Status = domain.StatusCancelled
	m.rows[id] = b
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users []domain.User
}

func (m *memUsers) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = int64(len(m.users) + 1)
	m.users = append(m.users, u)
	return u.ID, nil
}
func (m *memUsers) UserExists(ctx context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}
func (m *memUsers) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}
