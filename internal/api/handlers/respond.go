package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isdelr/notes-be/internal/auth"
	"github.com/rs/zerolog/log"
)

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// currentUserID returns the authenticated user's ID. Routes using it sit
// behind auth.LoginRequired or auth.RequireToken.
func currentUserID(r *http.Request) string {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		return claims.UserID
	}
	return ""
}
