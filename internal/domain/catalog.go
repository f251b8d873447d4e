package domain

import (
	"encoding/json"
	"time"
)

// Catalog is the seed export loaded by the seeder.
type Catalog struct {
	Hosts    []CatalogHost    `json:"hosts"`
	Listings []CatalogListing `json:"listings"`
}

type CatalogHost struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	PictureURL   *string `json:"picture_url"`
	Location     *string `json:"location"`
	About        *string `json:"about"`
	IsSuperhost  bool    `json:"is_superhost"`
	ResponseRate *string `json:"response_rate"`
	ResponseTime *string `json:"response_time"`
}

type CatalogListing struct {
	ID              int64           `json:"id"`
	HostID          int64           `json:"host_id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	Neighbourhood   *string         `json:"neighbourhood"`
	PictureURL      *string         `json:"picture_url"`
	Price           float64         `json:"price"`
	NumberOfReviews int             `json:"number_of_reviews"`
	Rating          *float64        `json:"review_scores_rating"`
	Accuracy        *float64        `json:"review_scores_accuracy"`
	Cleanliness     *float64        `json:"review_scores_cleanliness"`
	Checkin         *float64        `json:"review_scores_checkin"`
	Communication   *float64        `json:"review_scores_communication"`
	Location        *float64        `json:"review_scores_location"`
	Value           *float64        `json:"review_scores_value"`
	Amenities       []string        `json:"amenities"`
	Photos          []string        `json:"photos"`
	Reviews         []CatalogReview `json:"reviews"`
}

type CatalogReview struct {
	ID           int64     `json:"id"`
	Date         time.Time `json:"date"`
	ReviewerName string    `json:"reviewer_name"`
	Comments     *string   `json:"comments"`
}

// UnmarshalJSON accepts review dates as YYYY-MM-DD or RFC 3339.
func (r *CatalogReview) UnmarshalJSON(b []byte) error {
	type plain CatalogReview
	var raw struct {
		plain
		Date string `json:"date"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = CatalogReview(raw.plain)
	if raw.Date == "" {
		return nil
	}
	if d, err := ParseDate(raw.Date); err == nil {
		r.Date = d
		return nil
	}
	d, err := time.Parse(time.RFC3339, raw.Date)
	if err != nil {
		return Invalid("review %d: bad date %q", r.ID, raw.Date)
	}
	r.Date = d
	return nil
}
