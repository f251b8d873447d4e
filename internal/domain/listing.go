package domain

import (
	"math"
	"strings"
	"time"
)

type SortKey string

const (
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingDesc SortKey = "rating_desc"
)

const (
	DefaultPage          = 1
	DefaultListingLimit  = 30
	MaxListingLimit      = 100
	DetailReviewLimit    = 20
	SuggestionLimit      = 5
	SuggestionMinQueryLn = 2
)

type ListingSummary struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	PictureURL    *string  `json:"picture_url"`
	Neighbourhood *string  `json:"neighbourhood"`
	Price         float64  `json:"price"`
	Rating        *float64 `json:"review_scores_rating"`
}

type ListingDetail struct {
	ID              int64    `json:"id"`
	HostID          int64    `json:"host_id"`
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Neighbourhood   *string  `json:"neighbourhood"`
	PictureURL      *string  `json:"picture_url"`
	Price           float64  `json:"price"`
	NumberOfReviews int      `json:"number_of_reviews"`
	Rating          *float64 `json:"review_scores_rating"`
	Accuracy        *float64 `json:"review_scores_accuracy"`
	Cleanliness     *float64 `json:"review_scores_cleanliness"`
	Checkin         *float64 `json:"review_scores_checkin"`
	Communication   *float64 `json:"review_scores_communication"`
	Location        *float64 `json:"review_scores_location"`
	Value           *float64 `json:"review_scores_value"`

	HostName       string  `json:"host_name"`
	HostPictureURL *string `json:"host_picture_url"`
	IsSuperhost    bool    `json:"is_superhost"`
	ResponseRate   *string `json:"response_rate"`
	ResponseTime   *string `json:"response_time"`

	Amenities []string `json:"amenities"`
	Photos    []string `json:"photos"`
	Reviews   []Review `json:"reviews"`
}

type Review struct {
	ID           int64     `json:"id"`
	ListingID    int64     `json:"-"`
	Date         time.Time `json:"date"`
	ReviewerName string    `json:"reviewer_name"`
	Comments     *string   `json:"comments"`
}

// ListingFilter selects a page of listings. Nil bounds are not applied.
type ListingFilter struct {
	MinPrice      *float64
	MaxPrice      *float64
	Neighbourhood *string
	MinRating     *float64
	Sort          SortKey
	Page          int
	Limit         int
}

// Normalize fills defaults: page 1, limit 30 (capped at 100), price_asc.
func (f ListingFilter) Normalize() ListingFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultListingLimit
	}
	if f.Limit > MaxListingLimit {
		f.Limit = MaxListingLimit
	}
	if f.Sort == "" {
		f.Sort = SortPriceAsc
	}
	if f.Neighbourhood != nil && strings.TrimSpace(*f.Neighbourhood) == "" {
		f.Neighbourhood = nil
	}
	return f
}

func (f ListingFilter) Offset() int { return (f.Page - 1) * f.Limit }

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ListingsPage struct {
	Listings   []ListingSummary `json:"listings"`
	Pagination Pagination       `json:"pagination"`
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// MergePhotos puts the primary picture first, then the gallery, dropping empty URLs.
func MergePhotos(primary *string, gallery []string) []string {
	out := make([]string, 0, len(gallery)+1)
	if primary != nil && *primary != "" {
		out = append(out, *primary)
	}
	for _, p := range gallery {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

type Quote struct {
	ListingID     int64   `json:"listingId"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
	TotalPrice    float64 `json:"totalPrice"`
}
