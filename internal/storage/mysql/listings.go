package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toronto_stays/internal/adapters/observability"
	"toronto_stays/internal/domain"
)

type listingSummaryRow struct {
	ID            int64           `db:"id"`
	Name          string          `db:"name"`
	PictureURL    sql.NullString  `db:"picture_url"`
	Neighbourhood sql.NullString  `db:"neighbourhood"`
	Price         float64         `db:"price"`
	Rating        sql.NullFloat64 `db:"review_scores_rating"`
}

func (r listingSummaryRow) toDomain() domain.ListingSummary {
	return domain.ListingSummary{
		ID:            r.ID,
		Name:          r.Name,
		PictureURL:    nullStr(r.PictureURL),
		Neighbourhood: nullStr(r.Neighbourhood),
		Price:         r.Price,
		Rating:        nullF64(r.Rating),
	}
}

func summaries(rows []listingSummaryRow) []domain.ListingSummary {
	out := make([]domain.ListingSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

type listingDetailRow struct {
	ID              int64           `db:"id"`
	HostID          int64           `db:"host_id"`
	Name            string          `db:"name"`
	Description     sql.NullString  `db:"description"`
	Neighbourhood   sql.NullString  `db:"neighbourhood"`
	PictureURL      sql.NullString  `db:"picture_url"`
	Price           float64         `db:"price"`
	NumberOfReviews int             `db:"number_of_reviews"`
	Rating          sql.NullFloat64 `db:"review_scores_rating"`
	Accuracy        sql.NullFloat64 `db:"review_scores_accuracy"`
	Cleanliness     sql.NullFloat64 `db:"review_scores_cleanliness"`
	Checkin         sql.NullFloat64 `db:"review_scores_checkin"`
	Communication   sql.NullFloat64 `db:"review_scores_communication"`
	Location        sql.NullFloat64 `db:"review_scores_location"`
	Value           sql.NullFloat64 `db:"review_scores_value"`
	HostName        string          `db:"host_name"`
	HostPictureURL  sql.NullString  `db:"host_picture_url"`
	IsSuperhost     bool            `db:"is_superhost"`
	ResponseRate    sql.NullString  `db:"response_rate"`
	ResponseTime    sql.NullString  `db:"response_time"`
}

type reviewRow struct {
	ID           int64          `db:"id"`
	ListingID    int64          `db:"listing_id"`
	Date         time.Time      `db:"date"`
	ReviewerName string         `db:"reviewer_name"`
	Comments     sql.NullString `db:"comments"`
}

func (r *Repo) ListListings(ctx context.Context, f domain.ListingFilter) ([]domain.ListingSummary, error) {
	defer observability.ObserveDB("list_listings", time.Now())
	q, args, err := listingsPageQuery(f)
	if err != nil {
		return nil, err
	}
	var rows []listingSummaryRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return summaries(rows), nil
}

func (r *Repo) CountListings(ctx context.Context, f domain.ListingFilter) (int64, error) {
	defer observability.ObserveDB("count_listings", time.Now())
	q, args, err := listingsCountQuery(f)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.GetContext(ctx, &n, q, args...); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) GetListing(ctx context.Context, id int64) (domain.ListingDetail, error) {
	defer observability.ObserveDB("get_listing", time.Now())
	var row listingDetailRow
	if err := r.db.GetContext(ctx, &row, getListingSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ListingDetail{}, domain.ErrNotFound
		}
		return domain.ListingDetail{}, err
	}
	return domain.ListingDetail{
		ID:              row.ID,
		HostID:          row.HostID,
		Name:            row.Name,
		Description:     nullStr(row.Description),
		Neighbourhood:   nullStr(row.Neighbourhood),
		PictureURL:      nullStr(row.PictureURL),
		Price:           row.Price,
		NumberOfReviews: row.NumberOfReviews,
		Rating:          nullF64(row.Rating),
		Accuracy:        nullF64(row.Accuracy),
		Cleanliness:     nullF64(row.Cleanliness),
		Checkin:         nullF64(row.Checkin),
		Communication:   nullF64(row.Communication),
		Location:        nullF64(row.Location),
		Value:           nullF64(row.Value),
		HostName:        row.HostName,
		HostPictureURL:  nullStr(row.HostPictureURL),
		IsSuperhost:     row.IsSuperhost,
		ResponseRate:    nullStr(row.ResponseRate),
		ResponseTime:    nullStr(row.ResponseTime),
	}, nil
}

func (r *Repo) ListAmenities(ctx context.Context, listingID int64) ([]string, error) {
	defer observability.ObserveDB("list_amenities", time.Now())
	var out []string
	if err := r.db.SelectContext(ctx, &out, listAmenitiesSQL, listingID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ListPhotos(ctx context.Context, listingID int64) ([]string, error) {
	defer observability.ObserveDB("list_photos", time.Now())
	var out []string
	if err := r.db.SelectContext(ctx, &out, listPhotosSQL, listingID); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ListReviews(ctx context.Context, listingID int64, limit int) ([]domain.Review, error) {
	defer observability.ObserveDB("list_reviews", time.Now())
	var rows []reviewRow
	if err := r.db.SelectContext(ctx, &rows, listReviewsSQL, listingID, limit); err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rows))
	for _, rv := range rows {
		out = append(out, domain.Review{
			ID:           rv.ID,
			ListingID:    rv.ListingID,
			Date:         rv.Date,
			ReviewerName: rv.ReviewerName,
			Comments:     nullStr(rv.Comments),
		})
	}
	return out, nil
}

func (r *Repo) GetListingPrice(ctx context.Context, id int64) (float64, error) {
	defer observability.ObserveDB("get_listing_price", time.Now())
	var price float64
	if err := r.db.GetContext(ctx, &price, getListingPriceSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return price, nil
}

func (r *Repo) SuggestNeighbourhoods(ctx context.Context, q string, limit int) ([]string, error) {
	defer observability.ObserveDB("suggest_neighbourhoods", time.Now())
	var out []string
	if err := r.db.SelectContext(ctx, &out, suggestNeighbourhoodsSQL, containsPattern(q), limit); err != nil {
		return nil, err
	}
	return out, nil
}
