//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"toronto_stays/internal/domain"
	mysqlrepo "toronto_stays/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=$PWD/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// startMySQL runs an isolated MySQL container and returns a migrated repo.
func startMySQL(t *testing.T) *mysqlrepo.Repo {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=stays",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/stays?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return mysqlrepo.New(sqlx.NewDb(db, "mysql"))
}

func seedCatalog(t *testing.T, repo *mysqlrepo.Repo, listings int) {
	t.Helper()
	ctx := context.Background()
	if err := repo.UpsertHost(ctx, domain.CatalogHost{ID: 1, Name: "Maya", IsSuperhost: true, Location: pstr("Toronto")}); err != nil {
		t.Fatalf("UpsertHost: %v", err)
	}
	for i := 1; i <= listings; i++ {
		nbhd := "Annex"
		if i%2 == 0 {
			nbhd = "Kensington-Chinatown"
		}
		l := domain.CatalogListing{
			ID: int64(i), HostID: 1, Name: fmt.Sprintf("Listing %d", i),
			Neighbourhood: pstr(nbhd), PictureURL: pstr(fmt.Sprintf("p%d.jpg", i)),
			Price: float64(50 + i), Rating: pfloat(float64(i%5) + 0.5),
		}
		if err := repo.UpsertListing(ctx, l); err != nil {
			t.Fatalf("UpsertListing: %v", err)
		}
	}
}

// ---------- tests ----------
func TestRepo_MySQL_Catalog(t *testing.T) {
	repo := startMySQL(t)
	ctx := context.Background()
	seedCatalog(t, repo, 65)

	if err := repo.ReplaceAmenities(ctx, 1, []string{"Wifi", "Kitchen", "Wifi"}); err != nil {
		t.Fatalf("ReplaceAmenities: %v", err)
	}
	if err := repo.ReplacePhotos(ctx, 1, []string{"g1.jpg", "", "g2.jpg"}); err != nil {
		t.Fatalf("ReplacePhotos: %v", err)
	}
	day := func(s string) time.Time { d, _ := domain.ParseDate(s); return d }
	if err := repo.UpsertReviews(ctx, 1, []domain.CatalogReview{
		{ID: 1, Date: day("2024-01-01"), ReviewerName: "Old"},
		{ID: 2, Date: day("2024-05-01"), ReviewerName: "New", Comments: pstr("Great")},
	}); err != nil {
		t.Fatalf("UpsertReviews: %v", err)
	}

	total, err := repo.CountListings(ctx, domain.ListingFilter{})
	if err != nil || total != 65 {
		t.Fatalf("CountListings: %d %v", total, err)
	}

	f := domain.ListingFilter{MinPrice: pfloat(60), MaxPrice: pfloat(70), Sort: domain.SortPriceDesc, Page: 1, Limit: 30}
	page, err := repo.ListListings(ctx, f)
	if err != nil {
		t.Fatalf("ListListings: %v", err)
	}
	if len(page) != 11 || page[0].Price != 70 || page[10].Price != 60 {
		t.Fatalf("inclusive price bounds / sort broken: %+v", page)
	}

	f = domain.ListingFilter{Neighbourhood: pstr("kensington"), Page: 1, Limit: 30, Sort: domain.SortPriceAsc}
	n, _ := repo.CountListings(ctx, f)
	if n != 32 {
		t.Fatalf("neighbourhood substring count: %d", n)
	}
	n, _ = repo.CountListings(ctx, domain.ListingFilter{Neighbourhood: pstr("%")})
	if n != 0 {
		t.Fatalf("wildcards must match literally, got %d", n)
	}

	names, err := repo.SuggestNeighbourhoods(ctx, "an", 5)
	if err != nil || len(names) != 1 || names[0] != "Annex" {
		t.Fatalf("SuggestNeighbourhoods: %v %v", names, err)
	}

	l, err := repo.GetListing(ctx, 1)
	if err != nil || l.HostName != "Maya" || !l.IsSuperhost {
		t.Fatalf("GetListing: %+v %v", l, err)
	}
	if _, err := repo.GetListing(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	am, _ := repo.ListAmenities(ctx, 1)
	ph, _ := repo.ListPhotos(ctx, 1)
	rv, _ := repo.ListReviews(ctx, 1, 20)
	if len(am) != 2 || len(ph) != 2 || ph[0] != "g1.jpg" || len(rv) != 2 || rv[0].ReviewerName != "New" {
		t.Fatalf("children: %v %v %+v", am, ph, rv)
	}

	hl, err := repo.ListHostListings(ctx, 1, 10)
	if err != nil || len(hl) != 10 {
		t.Fatalf("ListHostListings: %d %v", len(hl), err)
	}
}

func TestRepo_MySQL_BookingLifecycle(t *testing.T) {
	repo := startMySQL(t)
	ctx := context.Background()
	seedCatalog(t, repo, 2)

	guest, err := repo.CreateUser(ctx, domain.User{Username: "ana", Email: "ana@example.com", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := repo.CreateUser(ctx, domain.User{Username: "other", Email: "ana@example.com", PasswordHash: "x"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate email: %v", err)
	}

	mk := func(listing int64, s, e string) domain.Booking {
		sd, _ := domain.ParseDate(s)
		ed, _ := domain.ParseDate(e)
		return domain.Booking{ListingID: listing, GuestID: guest, StartDate: sd, EndDate: ed, TotalPrice: 200, Status: domain.StatusConfirmed}
	}

	id, err := repo.CreateBooking(ctx, mk(1, "2025-06-10", "2025-06-12"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := repo.CreateBooking(ctx, mk(1, "2025-06-11", "2025-06-13")); !errors.Is(err, domain.ErrDatesUnavailable) {
		t.Fatalf("overlap: %v", err)
	}
	if _, err := repo.CreateBooking(ctx, mk(99, "2025-06-11", "2025-06-13")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing listing: %v", err)
	}
	huge := mk(1, "2025-08-01", "2025-08-03")
	huge.TotalPrice = 1e10
	if _, err := repo.CreateBooking(ctx, huge); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("out-of-range price: %v", err)
	}

	list, err := repo.ListGuestBookings(ctx, guest, domain.PageQuery{Page: 1, Limit: 20})
	if err != nil || len(list) != 1 || list[0].ListingName != "Listing 1" {
		t.Fatalf("ListGuestBookings: %+v %v", list, err)
	}

	if err := repo.CancelBooking(ctx, id); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if err := repo.CancelBooking(ctx, id); !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Fatalf("second cancel: %v", err)
	}
	b, err := repo.GetBooking(ctx, id)
	if err != nil || b.Status != domain.StatusCancelled {
		t.Fatalf("GetBooking: %+v %v", b, err)
	}

	// concurrent overlapping creates on a free range: exactly one wins
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.CreateBooking(ctx, mk(2, "2025-07-01", "2025-07-05")); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected one winner, got %d", wins)
	}
}
