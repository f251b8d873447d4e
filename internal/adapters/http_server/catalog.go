package httpserver

import (
	"net/http"
	"strings"

	"toronto_stays/internal/domain"
)

func (h *Handlers) listListings(w http.ResponseWriter, r *http.Request) {
	f := domain.ListingFilter{
		MinPrice:  queryFloat(r, "minPrice"),
		MaxPrice:  queryFloat(r, "maxPrice"),
		MinRating: queryFloat(r, "minRating"),
		Sort:      domain.SortKey(r.URL.Query().Get("sort")),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}
	if n := strings.TrimSpace(r.URL.Query().Get("neighbourhood")); n != "" {
		f.Neighbourhood = &n
	}

	page, err := h.Listings.Search(r.Context(), f)
	if err != nil {
		fail(w, r, "Listings", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) getListing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, "Listing", err)
		return
	}
	l, err := h.Listings.GetListing(r.Context(), id)
	if err != nil {
		fail(w, r, "Listing", err)
		return
	}
	writeWithETag(w, r, l)
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, "Listing", err)
		return
	}
	q := r.URL.Query()
	if q.Get("startDate") == "" || q.Get("endDate") == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	out, err := h.Listings.Quote(r.Context(), id, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		fail(w, r, "Listing", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) suggestNeighbourhoods(w http.ResponseWriter, r *http.Request) {
	names, err := h.Listings.SuggestNeighbourhoods(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		fail(w, r, "Neighbourhoods", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *Handlers) getHost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, "Host", err)
		return
	}
	host, err := h.Hosts.GetHost(r.Context(), id)
	if err != nil {
		fail(w, r, "Host", err)
		return
	}
	writeWithETag(w, r, host)
}
