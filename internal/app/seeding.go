package app

import (
	"context"
	"fmt"

	"toronto_stays/internal/domain"
)

type SeedService struct {
	repo  domain.CatalogRepository
	cache domain.Cache
}

func NewSeedService(r domain.CatalogRepository, cache domain.Cache) *SeedService {
	return &SeedService{repo: r, cache: cache}
}

func (s *SeedService) SeedHost(ctx context.Context, h domain.CatalogHost) error {
	if err := s.repo.UpsertHost(ctx, h); err != nil {
		return fmt.Errorf("upsert host %d: %w", h.ID, err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, hostKey(h.ID))
	}
	return nil
}

// SeedListing writes the listing row first so its amenity, photo and review
// rows satisfy their foreign keys.
func (s *SeedService) SeedListing(ctx context.Context, l domain.CatalogListing) error {
	if l.ID <= 0 || l.HostID <= 0 || l.Name == "" {
		return domain.Invalid("listing %d: id, host_id and name are required", l.ID)
	}
	if err := s.repo.UpsertListing(ctx, l); err != nil {
		return fmt.Errorf("upsert listing %d: %w", l.ID, err)
	}
	if err := s.repo.ReplaceAmenities(ctx, l.ID, l.Amenities); err != nil {
		return fmt.Errorf("amenities for %d: %w", l.ID, err)
	}
	if err := s.repo.ReplacePhotos(ctx, l.ID, l.Photos); err != nil {
		return fmt.Errorf("photos for %d: %w", l.ID, err)
	}
	if len(l.Reviews) > 0 {
		if err := s.repo.UpsertReviews(ctx, l.ID, l.Reviews); err != nil {
			return fmt.Errorf("reviews for %d: %w", l.ID, err)
		}
	}

	// listing detail and the host card both embed this listing
	if s.cache != nil {
		_ = s.cache.Del(ctx, listingKey(l.ID))
		_ = s.cache.Del(ctx, hostKey(l.HostID))
	}
	return nil
}
