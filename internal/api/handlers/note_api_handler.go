package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/notes-be/internal/forms"
	"github.com/isdelr/notes-be/internal/models"
	"github.com/isdelr/notes-be/internal/services"
	"github.com/isdelr/notes-be/internal/urls"
	"github.com/rs/zerolog/log"
)

// NoteAPIHandler handles the JSON API for notes.
type NoteAPIHandler struct {
	service services.NoteServiceProvider
}

// NewNoteAPIHandler creates a new NoteAPIHandler.
func NewNoteAPIHandler(service services.NoteServiceProvider) *NoteAPIHandler {
	return &NoteAPIHandler{service: service}
}

// GetAll returns the current user's notes.
func (h *NoteAPIHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	notes, err := h.service.ListNotesForAuthor(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to retrieve notes")
		http.Error(w, "Failed to retrieve notes", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// Get returns a single note by slug.
func (h *NoteAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	note, ok := h.loadNote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// Create validates the body and stores a new note.
func (h *NoteAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.bindForm(w, r, "")
	if !ok {
		return
	}

	note, err := h.service.CreateNote(models.Note{Title: form.Title, Text: form.Text, Slug: form.Slug, AuthorID: currentUserID(r)})
	if err != nil {
		h.writeSaveError(w, err, &form)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// Update replaces title, text and slug of a note.
func (h *NoteAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	note, ok := h.loadNote(w, r)
	if !ok {
		return
	}
	form, ok := h.bindForm(w, r, note.ID)
	if !ok {
		return
	}

	note.Title, note.Text, note.Slug = form.Title, form.Text, form.Slug
	updated, err := h.service.UpdateNote(note)
	if err != nil {
		h.writeSaveError(w, err, &form)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a note.
func (h *NoteAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	note, ok := h.loadNote(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteNote(note.ID, note.AuthorID); err != nil {
		h.writeSaveError(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteAPIHandler) loadNote(w http.ResponseWriter, r *http.Request) (models.Note, bool) {
	slug := chi.URLParam(r, urls.SlugParam)
	note, err := h.service.GetNoteForAuthor(slug, currentUserID(r))
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			http.Error(w, "Note not found", http.StatusNotFound)
			return models.Note{}, false
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to get note")
		http.Error(w, "Failed to retrieve note", http.StatusInternalServerError)
		return models.Note{}, false
	}
	return note, true
}

func (h *NoteAPIHandler) bindForm(w http.ResponseWriter, r *http.Request, excludeID string) (forms.NoteForm, bool) {
	var form forms.NoteForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return form, false
	}
	form.Title = strings.TrimSpace(form.Title)
	form.Text = strings.TrimSpace(form.Text)
	form.Slug = strings.TrimSpace(form.Slug)

	valid, err := form.Validate(h.service, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to validate note")
		http.Error(w, "Failed to validate note", http.StatusInternalServerError)
		return form, false
	}
	if !valid {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": form.Errors})
		return form, false
	}
	return form, true
}

func (h *NoteAPIHandler) writeSaveError(w http.ResponseWriter, err error, form *forms.NoteForm) {
	switch {
	case errors.Is(err, services.ErrSlugTaken) && form != nil:
		form.AddSlugTaken()
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": form.Errors})
	case errors.Is(err, services.ErrNoteNotFound):
		http.Error(w, "Note not found", http.StatusNotFound)
	default:
		log.Error().Err(err).Msg("Failed to save note")
		http.Error(w, "Failed to save note", http.StatusInternalServerError)
	}
}
