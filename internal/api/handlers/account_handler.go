package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/notes-be/internal/auth"
	"github.com/isdelr/notes-be/internal/forms"
	"github.com/isdelr/notes-be/internal/services"
	"github.com/isdelr/notes-be/internal/urls"
	"github.com/isdelr/notes-be/internal/views"
	"github.com/rs/zerolog/log"
)

// AccountHandler serves the login, logout and signup pages.
type AccountHandler struct {
	service  services.UserServiceProvider
	tokens   *auth.TokenManager
	renderer views.Renderer
	secure   bool
}

// NewAccountHandler creates a new AccountHandler. secure marks the session
// cookie as HTTPS-only.
func NewAccountHandler(service services.UserServiceProvider, tokens *auth.TokenManager, renderer views.Renderer, secure bool) *AccountHandler {
	return &AccountHandler{service: service, tokens: tokens, renderer: renderer, secure: secure}
}

// Login shows the login form and starts a session on valid credentials.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderer.Render(w, r, http.StatusOK, "users/login.html", views.Data{
			"form": forms.LoginForm{Errors: forms.Errors{}},
			"next": r.URL.Query().Get("next"),
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	form := forms.NewLoginForm(r)
	next := r.PostFormValue("next")
	if next == "" {
		next = r.URL.Query().Get("next")
	}
	rerender := func() {
		h.renderer.Render(w, r, http.StatusOK, "users/login.html", views.Data{"form": form, "next": next})
	}

	if !form.Validate() {
		rerender()
		return
	}

	user, err := h.service.AuthenticateUser(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", form.Username).Msg("Failed authentication attempt")
			form.Errors.Add(forms.NonFieldErrors, forms.MsgInvalidLogin)
			rerender()
			return
		}
		log.Error().Err(err).Str("username", form.Username).Msg("Failed to authenticate user")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}
	auth.SetSessionCookie(w, token, h.tokens.TTL(), h.secure)

	http.Redirect(w, r, auth.SafeNext(next, urls.Reverse(urls.List)), http.StatusFound)
}

// Logout ends the session and renders the logged-out page.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secure)
	r = r.WithContext(auth.WithClaims(r.Context(), nil))
	h.renderer.Render(w, r, http.StatusOK, "users/logout.html", nil)
}

// Signup shows the registration form and creates the account on POST.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderer.Render(w, r, http.StatusOK, "users/signup.html", views.Data{"form": forms.SignupForm{Errors: forms.Errors{}}})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	form := forms.NewSignupForm(r)
	valid, err := form.Validate(h.service)
	if err != nil {
		log.Error().Err(err).Msg("Failed to validate signup form")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}
	if !valid {
		h.renderer.Render(w, r, http.StatusOK, "users/signup.html", views.Data{"form": form})
		return
	}

	if _, err := h.service.CreateUser(form.Username, form.Password1); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			form.Errors.Add("username", forms.MsgUsernameTaken)
			h.renderer.Render(w, r, http.StatusOK, "users/signup.html", views.Data{"form": form})
			return
		}
		log.Error().Err(err).Str("username", form.Username).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, urls.Reverse(urls.Login), http.StatusFound)
}
