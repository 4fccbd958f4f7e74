package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/notes-be/internal/auth"
	"github.com/isdelr/notes-be/internal/forms"
	"github.com/isdelr/notes-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles the JSON API for accounts.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenManager
	secure  bool
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenManager, secure bool) *UserHandler {
	return &UserHandler{service: service, tokens: tokens, secure: secure}
}

// AuthPayload defines the structure for login and registration requests.
type AuthPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	form := forms.SignupForm{Username: payload.Username, Password1: payload.Password, Password2: payload.Password}
	valid, err := form.Validate(h.service)
	if err != nil {
		log.Error().Err(err).Msg("Failed to validate registration")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}
	if !valid {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": form.Errors})
		return
	}

	user, err := h.service.CreateUser(form.Username, form.Password1)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": forms.Errors{"username": {forms.MsgUsernameTaken}}})
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication and JWT generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.AuthenticateUser(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to authenticate user")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	auth.SetSessionCookie(w, token, h.tokens.TTL(), h.secure)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetMe retrieves the currently authenticated user from the token.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	user, err := h.service.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			log.Warn().Str("user_id", userID).Msg("User from token not found in DB")
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		http.Error(w, "Failed to load user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
