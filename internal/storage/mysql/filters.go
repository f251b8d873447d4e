package mysql

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"toronto_stays/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, treating
// wildcards in s literally.
func containsPattern(s string) string { return "%" + likeEscaper.Replace(s) + "%" }

// listingPredicates composes the listing filter. Bounds are inclusive; an
// empty filter matches everything.
func listingPredicates(f domain.ListingFilter) sq.And {
	preds := sq.And{}
	if f.MinPrice != nil {
		preds = append(preds, sq.GtOrEq{"price": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		preds = append(preds, sq.LtOrEq{"price": *f.MaxPrice})
	}
	if f.Neighbourhood != nil {
		preds = append(preds, sq.Like{"neighbourhood": containsPattern(*f.Neighbourhood)})
	}
	if f.MinRating != nil {
		preds = append(preds, sq.GtOrEq{"review_scores_rating": *f.MinRating})
	}
	return preds
}

// listingOrder maps a sort key to ORDER BY terms. Unknown keys yield none and
// the store's natural order applies.
func listingOrder(s domain.SortKey) []string {
	switch s {
	case domain.SortPriceAsc:
		return []string{"price ASC", "id ASC"}
	case domain.SortPriceDesc:
		return []string{"price DESC", "id ASC"}
	case domain.SortRatingDesc:
		return []string{"review_scores_rating DESC", "id ASC"}
	}
	return nil
}

func listingsPageQuery(f domain.ListingFilter) (string, []any, error) {
	q := sq.Select(listingSummaryColumns...).
		From("listings").
		Where(listingPredicates(f))
	if order := listingOrder(f.Sort); len(order) > 0 {
		q = q.OrderBy(order...)
	}
	return q.Limit(uint64(f.Limit)).Offset(uint64(f.Offset())).ToSql()
}

func listingsCountQuery(f domain.ListingFilter) (string, []any, error) {
	return sq.Select("COUNT(*)").
		From("listings").
		Where(listingPredicates(f)).
		ToSql()
}
