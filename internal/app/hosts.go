package app

import (
	"context"
	"time"

	"toronto_stays/internal/domain"
)

type HostService struct {
	repo     domain.HostRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHostService(r domain.HostRepository, c domain.Cache, ttl time.Duration) *HostService {
	return &HostService{repo: r, cache: c, cacheTTL: ttl}
}

// GetHost returns the host profile with at most ten of its listings.
func (s *HostService) GetHost(ctx context.Context, id int64) (domain.Host, error) {
	key := hostKey(id)
	var cached domain.Host
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	h, err := s.repo.GetHost(ctx, id)
	if err != nil {
		return domain.Host{}, storageErr("get host", err)
	}
	ls, err := s.repo.ListHostListings(ctx, id, domain.HostListingLimit)
	if err != nil {
		return domain.Host{}, storageErr("list host listings", err)
	}
	if ls == nil {
		ls = []domain.ListingSummary{}
	}
	h.Listings = ls

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}
