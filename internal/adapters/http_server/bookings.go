package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"toronto_stays/internal/adapters/observability"
	"toronto_stays/internal/app"
	"toronto_stays/internal/domain"
)

type createBookingRequest struct {
	ListingID  int64   `json:"listingId" validate:"required,gt=0"`
	GuestID    int64   `json:"guestId" validate:"required,gt=0"`
	StartDate  string  `json:"startDate" validate:"required"`
	EndDate    string  `json:"endDate" validate:"required"`
	TotalPrice float64 `json:"totalPrice" validate:"required,gt=0,lte=99999999.99"`
}

type createBookingResponse struct {
	Message   string `json:"message"`
	BookingID int64  `json:"bookingId"`
}

type cancelBookingRequest struct {
	BookingID int64 `json:"bookingId" validate:"required,gt=0"`
}

type bookingResponse struct {
	ID          int64                `json:"id"`
	ListingID   int64                `json:"listing_id"`
	GuestID     int64                `json:"guest_id"`
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	TotalPrice  float64              `json:"total_price"`
	Status      domain.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	ListingName string               `json:"listing_name"`
	PictureURL  *string              `json:"picture_url"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		ListingID:   b.ListingID,
		GuestID:     b.GuestID,
		StartDate:   b.StartDate.Format(domain.DateLayout),
		EndDate:     b.EndDate.Format(domain.DateLayout),
		TotalPrice:  b.TotalPrice,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		ListingName: b.ListingName,
		PictureURL:  b.ListingPictureURL,
	}
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	var req createBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, "Booking", err)
		return
	}
	if req.GuestID != claims.UserID {
		fail(w, r, "Booking", domain.ErrForbidden)
		return
	}

	id, err := h.Bookings.Create(r.Context(), app.CreateBookingInput{
		ListingID:  req.ListingID,
		GuestID:    req.GuestID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDatesUnavailable) {
			observability.ObserveBooking("conflict")
		}
		fail(w, r, "Listing", err)
		return
	}
	observability.ObserveBooking("created")
	log.Info().Int64("booking_id", id).Int64("listing_id", req.ListingID).Int64("guest_id", req.GuestID).Msg("booking created")
	writeJSON(w, http.StatusOK, createBookingResponse{Message: "Booking created successfully", BookingID: id})
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	raw := r.URL.Query().Get("guestId")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "Missing guestId")
		return
	}
	guestID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || guestID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid guestId")
		return
	}
	if guestID != claims.UserID {
		fail(w, r, "Bookings", domain.ErrForbidden)
		return
	}

	list, total, err := h.Bookings.ListForGuest(r.Context(), guestID, domain.PageQuery{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	})
	if err != nil {
		fail(w, r, "Bookings", err)
		return
	}
	out := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResponse(b))
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())

	var req cancelBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) && ve.Msg == "Missing required fields" {
			err = domain.Invalid("Booking ID is required")
		}
		fail(w, r, "Booking", err)
		return
	}

	if err := h.Bookings.Cancel(r.Context(), req.BookingID, claims.UserID); err != nil {
		if errors.Is(err, domain.ErrAlreadyCancelled) || errors.Is(err, domain.ErrCancellationWindowPassed) {
			observability.ObserveBooking("cancel_rejected")
		}
		fail(w, r, "Booking", err)
		return
	}
	observability.ObserveBooking("cancelled")
	log.Info().Int64("booking_id", req.BookingID).Int64("guest_id", claims.UserID).Msg("booking cancelled")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Booking cancelled successfully"})
}
