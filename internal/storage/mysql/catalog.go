package mysql

import (
	"context"
	"strings"
	"time"

	"toronto_stays/internal/adapters/observability"
	"toronto_stays/internal/domain"
)

func (r *Repo) UpsertHost(ctx context.Context, h domain.CatalogHost) error {
	defer observability.ObserveDB("upsert_host", time.Now())
	_, err := r.db.ExecContext(ctx, upsertHostSQL,
		h.ID,
		h.Name,
		valStr(h.PictureURL),
		valStr(h.Location),
		valStr(h.About),
		h.IsSuperhost,
		valStr(h.ResponseRate),
		valStr(h.ResponseTime),
	)
	return err
}

func (r *Repo) UpsertListing(ctx context.Context, l domain.CatalogListing) error {
	defer observability.ObserveDB("upsert_listing", time.Now())
	_, err := r.db.ExecContext(ctx, upsertListingSQL,
		l.ID,
		l.HostID,
		l.Name,
		valStr(l.Description),
		valStr(l.Neighbourhood),
		valStr(l.PictureURL),
		l.Price,
		l.NumberOfReviews,
		valF64(l.Rating),
		valF64(l.Accuracy),
		valF64(l.Cleanliness),
		valF64(l.Checkin),
		valF64(l.Communication),
		valF64(l.Location),
		valF64(l.Value),
	)
	return err
}

// ReplaceAmenities swaps the listing's amenity links for names, creating
// amenity rows as needed.
func (r *Repo) ReplaceAmenities(ctx context.Context, listingID int64, names []string) (err error) {
	defer observability.ObserveDB("replace_amenities", time.Now())
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteListingAmenitiesSQL, listingID); err != nil {
		return err
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		res, err := tx.ExecContext(ctx, upsertAmenitySQL, name)
		if err != nil {
			return err
		}
		amenityID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, linkAmenitySQL, listingID, amenityID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) ReplacePhotos(ctx context.Context, listingID int64, urls []string) (err error) {
	defer observability.ObserveDB("replace_photos", time.Now())
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteListingPhotosSQL, listingID); err != nil {
		return err
	}
	pos := 0
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx, insertPhotoSQL, listingID, u, pos); err != nil {
			return err
		}
		pos++
	}
	return tx.Commit()
}

func (r *Repo) UpsertReviews(ctx context.Context, listingID int64, rs []domain.CatalogReview) error {
	if len(rs) == 0 {
		return nil
	}
	defer observability.ObserveDB("upsert_reviews", time.Now())
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*5)
	for _, rv := range rs {
		// (id, listing_id, `date`, reviewer_name, comments)
		values = append(values, "(?,?,?,?,?)")
		args = append(args,
			rv.ID,
			listingID,
			dateStr(rv.Date),
			rv.ReviewerName,
			valStr(rv.Comments),
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}
