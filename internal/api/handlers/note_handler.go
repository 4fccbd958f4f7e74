package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/notes-be/internal/forms"
	"github.com/isdelr/notes-be/internal/models"
	"github.com/isdelr/notes-be/internal/services"
	"github.com/isdelr/notes-be/internal/urls"
	"github.com/isdelr/notes-be/internal/views"
	"github.com/rs/zerolog/log"
)

// NoteHandler serves the HTML pages for notes.
type NoteHandler struct {
	service  services.NoteServiceProvider
	renderer views.Renderer
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service services.NoteServiceProvider, renderer views.Renderer) *NoteHandler {
	return &NoteHandler{service: service, renderer: renderer}
}

// Home renders the landing page.
func (h *NoteHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "notes/home.html", nil)
}

// Success renders the confirmation page shown after a change.
func (h *NoteHandler) Success(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "notes/success.html", nil)
}

// List renders the current user's notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	notes, err := h.service.ListNotesForAuthor(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list notes")
		http.Error(w, "Failed to retrieve notes", http.StatusInternalServerError)
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "notes/list.html", views.Data{"object_list": notes})
}

// Detail renders one of the current user's notes.
func (h *NoteHandler) Detail(w http.ResponseWriter, r *http.Request) {
	note, ok := h.loadNote(w, r)
	if !ok {
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "notes/detail.html", views.Data{"note": note})
}

// Add shows the empty note form and creates a note on POST.
func (h *NoteHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.renderer.Render(w, r, http.StatusOK, "notes/form.html", views.Data{"form": forms.NoteForm{Errors: forms.Errors{}}})
		return
	}

	userID := currentUserID(r)
	form, ok := h.bindForm(w, r, "", views.Data{})
	if !ok {
		return
	}

	_, err := h.service.CreateNote(models.Note{Title: form.Title, Text: form.Text, Slug: form.Slug, AuthorID: userID})
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			form.AddSlugTaken()
			h.renderer.Render(w, r, http.StatusOK, "notes/form.html", views.Data{"form": form})
			return
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create note")
		http.Error(w, "Failed to create note", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, urls.Reverse(urls.Success), http.StatusFound)
}

// Edit shows the pre-filled note form and saves it on POST.
func (h *NoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	note, ok := h.loadNote(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		h.renderer.Render(w, r, http.StatusOK, "notes/form.html", views.Data{"form": forms.NoteFormFrom(note), "note": note})
		return
	}

	form, ok := h.bindForm(w, r, note.ID, views.Data{"note": note})
	if !ok {
		return
	}

	note.Title, note.Text, note.Slug = form.Title, form.Text, form.Slug
	if _, err := h.service.UpdateNote(note); err != nil {
		switch {
		case errors.Is(err, services.ErrSlugTaken):
			form.AddSlugTaken()
			h.renderer.Render(w, r, http.StatusOK, "notes/form.html", views.Data{"form": form, "note": note})
		case errors.Is(err, services.ErrNoteNotFound):
			http.NotFound(w, r)
		default:
			log.Error().Err(err).Str("note_id", note.ID).Msg("Failed to update note")
			http.Error(w, "Failed to update note", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, urls.Reverse(urls.Success), http.StatusFound)
}

// Delete asks for confirmation and removes the note on POST.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	note, ok := h.loadNote(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		h.renderer.Render(w, r, http.StatusOK, "notes/delete.html", views.Data{"note": note})
		return
	}

	if err := h.service.DeleteNote(note.ID, note.AuthorID); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Str("note_id", note.ID).Msg("Failed to delete note")
		http.Error(w, "Failed to delete note", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, urls.Reverse(urls.Success), http.StatusFound)
}

// loadNote fetches the note named in the URL for the current user. It
// writes a 404 when the note is missing or belongs to someone else.
func (h *NoteHandler) loadNote(w http.ResponseWriter, r *http.Request) (models.Note, bool) {
	slug := chi.URLParam(r, urls.SlugParam)
	userID := currentUserID(r)

	note, err := h.service.GetNoteForAuthor(slug, userID)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			http.NotFound(w, r)
			return models.Note{}, false
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to load note")
		http.Error(w, "Failed to retrieve note", http.StatusInternalServerError)
		return models.Note{}, false
	}
	return note, true
}

// bindForm parses and validates a posted note form. On invalid input it
// re-renders the form with data plus the bound form.
func (h *NoteHandler) bindForm(w http.ResponseWriter, r *http.Request, excludeID string, data views.Data) (forms.NoteForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return forms.NoteForm{}, false
	}

	form := forms.NewNoteForm(r)
	valid, err := form.Validate(h.service, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to validate note form")
		http.Error(w, "Failed to validate note", http.StatusInternalServerError)
		return forms.NoteForm{}, false
	}
	if !valid {
		data["form"] = form
		h.renderer.Render(w, r, http.StatusOK, "notes/form.html", data)
		return forms.NoteForm{}, false
	}
	return form, true
}
