package httpserver

import (
	"net/http"
	"time"

	"toronto_stays/internal/app"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// max counts characters; the byte limit on passwords is enforced by the account service
type registerRequest struct {
	Username string  `json:"username" validate:"required,max=64"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,max=72"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, "User", err)
		return
	}
	sess, err := h.Accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		fail(w, r, "User", err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		ID:        sess.UserID,
		Username:  sess.Username,
		Email:     sess.Email,
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	})
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, "User", err)
		return
	}
	id, err := h.Accounts.Register(r.Context(), app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		fail(w, r, "User", err)
		return
	}
	writeJSON(w, http.StatusOK, registerResponse{Message: "User registered successfully", UserID: id})
}
