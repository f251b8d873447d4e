package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"toronto_stays/internal/adapters/observability"
	"toronto_stays/internal/domain"
)

type hostRow struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	PictureURL   sql.NullString `db:"picture_url"`
	Location     sql.NullString `db:"location"`
	About        sql.NullString `db:"about"`
	IsSuperhost  bool           `db:"is_superhost"`
	ResponseRate sql.NullString `db:"response_rate"`
	ResponseTime sql.NullString `db:"response_time"`
}

func (r *Repo) GetHost(ctx context.Context, id int64) (domain.Host, error) {
	defer observability.ObserveDB("get_host", time.Now())
	var row hostRow
	if err := r.db.GetContext(ctx, &row, getHostSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Host{}, domain.ErrNotFound
		}
		return domain.Host{}, err
	}
	return domain.Host{
		ID:           row.ID,
		Name:         row.Name,
		PictureURL:   nullStr(row.PictureURL),
		Location:     nullStr(row.Location),
		About:        nullStr(row.About),
		IsSuperhost:  row.IsSuperhost,
		ResponseRate: nullStr(row.ResponseRate),
		ResponseTime: nullStr(row.ResponseTime),
	}, nil
}

func (r *Repo) ListHostListings(ctx context.Context, hostID int64, limit int) ([]domain.ListingSummary, error) {
	defer observability.ObserveDB("list_host_listings", time.Now())
	var rows []listingSummaryRow
	if err := r.db.SelectContext(ctx, &rows, listHostListingsSQL, hostID, limit); err != nil {
		return nil, err
	}
	return summaries(rows), nil
}
