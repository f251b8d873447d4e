package app

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"toronto_stays/internal/domain"
)

type ListingService struct {
	repo     domain.ListingRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewListingService(r domain.ListingRepository, c domain.Cache, ttl time.Duration) *ListingService {
	return &ListingService{repo: r, cache: c, cacheTTL: ttl}
}

// Search returns one page of listings plus totals computed with the same filter.
func (s *ListingService) Search(ctx context.Context, f domain.ListingFilter) (domain.ListingsPage, error) {
	f = f.Normalize()
	total, err := s.repo.CountListings(ctx, f)
	if err != nil {
		return domain.ListingsPage{}, storageErr("count listings", err)
	}

	items := []domain.ListingSummary{}
	// past the last page there is nothing to fetch
	if int64(f.Offset()) < total {
		items, err = s.repo.ListListings(ctx, f)
		if err != nil {
			return domain.ListingsPage{}, storageErr("list listings", err)
		}
		if items == nil {
			items = []domain.ListingSummary{}
		}
	}

	return domain.ListingsPage{
		Listings: items,
		Pagination: domain.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: domain.TotalPages(total, f.Limit),
		},
	}, nil
}

func (s *ListingService) GetListing(ctx context.Context, id int64) (domain.ListingDetail, error) {
	key := listingKey(id)
	var cached domain.ListingDetail
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	l, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return domain.ListingDetail{}, storageErr("get listing", err)
	}

	var amenities, gallery []string
	var reviews []domain.Review
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		amenities, err = s.repo.ListAmenities(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		gallery, err = s.repo.ListPhotos(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = s.repo.ListReviews(gctx, id, domain.DetailReviewLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ListingDetail{}, storageErr("get listing extras", err)
	}

	if amenities == nil {
		amenities = []string{}
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	l.Amenities = amenities
	l.Photos = domain.MergePhotos(l.PictureURL, gallery)
	l.Reviews = reviews

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, l, int(s.cacheTTL.Seconds()))
	}
	return l, nil
}

// SuggestNeighbourhoods returns up to five neighbourhood names containing q.
// Queries shorter than two characters return an empty list without touching the store.
func (s *ListingService) SuggestNeighbourhoods(ctx context.Context, q string) ([]string, error) {
	if utf8.RuneCountInString(q) < domain.SuggestionMinQueryLn {
		return []string{}, nil
	}
	key := suggestKey(strings.ToLower(q))
	var out []string
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok && out != nil {
			return out, nil
		}
	}

	out, err := s.repo.SuggestNeighbourhoods(ctx, q, domain.SuggestionLimit)
	if err != nil {
		return nil, storageErr("suggest neighbourhoods", err)
	}
	if out == nil {
		out = []string{}
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// Quote prices a stay at the listing's nightly rate.
func (s *ListingService) Quote(ctx context.Context, id int64, start, end string) (domain.Quote, error) {
	r, err := domain.ParseDateRange(start, end)
	if err != nil {
		return domain.Quote{}, err
	}
	price, err := s.repo.GetListingPrice(ctx, id)
	if err != nil {
		return domain.Quote{}, storageErr("get listing price", err)
	}
	nights := r.Nights()
	return domain.Quote{
		ListingID:     id,
		Nights:        nights,
		PricePerNight: price,
		TotalPrice:    domain.QuoteTotal(price, nights),
	}, nil
}
