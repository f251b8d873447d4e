package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"toronto_stays/internal/app"
	"toronto_stays/internal/domain"
)

type Handlers struct {
	Listings *app.ListingService
	Hosts    *app.HostService
	Bookings *app.BookingService
	Accounts *app.AccountService

	// AuthLimit throttles /auth/*; nil disables it.
	AuthLimit *IPRateLimiter
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/auth", func(r chi.Router) {
		if h.AuthLimit != nil {
			r.Use(h.AuthLimit.Middleware)
		}
		r.Post("/login", h.login)
		r.Post("/register", h.register)
	})

	s.mux.Get("/listings", h.listListings)
	s.mux.Get("/listings/{id}", h.getListing)
	s.mux.Get("/listings/{id}/quote", h.quote)
	s.mux.Get("/neighbourhoods", h.suggestNeighbourhoods)
	s.mux.Get("/hosts/{id}", h.getHost)

	s.mux.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.Accounts))
		r.Post("/bookings", h.createBooking)
		r.Get("/bookings", h.listBookings)
		r.Post("/bookings/cancel", h.cancelBooking)
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// fail maps service errors to a status and message. subject names the
// resource in 404 responses.
func fail(w http.ResponseWriter, r *http.Request, subject string, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, subject+" not found")
	case errors.Is(err, domain.ErrDatesUnavailable):
		writeError(w, http.StatusConflict, "Dates are not available")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "User already exists")
	case errors.Is(err, domain.ErrAlreadyCancelled):
		writeError(w, http.StatusBadRequest, "Booking is already cancelled")
	case errors.Is(err, domain.ErrCancellationWindowPassed):
		writeError(w, http.StatusBadRequest, "Cancellation is only allowed more than 3 days before check-in")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Forbidden")
	default:
		ev := log.Error().Err(err).Str("route", routePattern(r))
		var se *domain.StorageError
		if errors.As(err, &se) {
			ev = ev.Str("op", se.Op)
		}
		ev.Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		return rc.RoutePattern()
	}
	return r.URL.Path
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeWithETag answers 304 when the client already holds this version.
func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("route", routePattern(r)).Msg("failed to write body")
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("Invalid ID")
	}
	return id, nil
}

// ---- request decoding ----

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads the body into dst and runs its validate tags. Every
// failure comes back as a domain ValidationError.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return domain.Invalid("Invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return domain.Invalid("Invalid request")
		}
		return validationMessage(verrs)
	}
	return nil
}

func validationMessage(verrs validator.ValidationErrors) error {
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return domain.Invalid("Missing required fields")
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return domain.Invalid("Invalid email")
	case "max":
		return domain.Invalid("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return domain.Invalid("%s must be greater than %s", fe.Field(), fe.Param())
	case "lte":
		return domain.Invalid("%s must be at most %s", fe.Field(), fe.Param())
	}
	return domain.Invalid("%s is invalid", fe.Field())
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

func queryFloat(r *http.Request, key string) *float64 {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

type messageResponse struct {
	Message string `json:"message"`
}
