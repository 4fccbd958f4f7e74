package forms

import (
	"net/http"

	"github.com/isdelr/notes-be/internal/models"
)

const (
	// TitleMaxLength is the longest title a note may carry.
	TitleMaxLength = 100

	// SlugWarning is appended to a slug that is already used by another note.
	SlugWarning = " - such a slug already exists, please choose a unique value!"

	msgInvalidSlug = "Enter a valid “slug” consisting of letters, numbers, underscores or hyphens."
	msgEmptySlug   = "A slug could not be derived from the title, please enter one."
)

// SlugChecker looks up whether a slug is taken by a note other than excludeID.
type SlugChecker interface {
	SlugExists(slug, excludeID string) (bool, error)
}

// NoteForm carries the editable fields of a note.
type NoteForm struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Slug   string `json:"slug"`
	Errors Errors `json:"-"`
}

// NewNoteForm reads a note form from a urlencoded or multipart request body.
func NewNoteForm(r *http.Request) NoteForm {
	return NoteForm{
		Title:  postValue(r, "title"),
		Text:   postValue(r, "text"),
		Slug:   postValue(r, "slug"),
		Errors: Errors{},
	}
}

// NoteFormFrom pre-fills a form with an existing note.
func NoteFormFrom(note models.Note) NoteForm {
	return NoteForm{Title: note.Title, Text: note.Text, Slug: note.Slug, Errors: Errors{}}
}

// Validate checks every field and fills in a derived slug when none was
// given. excludeID is the note being edited, or "" on creation. The
// returned error is only set when the checker itself fails.
func (f *NoteForm) Validate(checker SlugChecker, excludeID string) (bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}

	switch {
	case f.Title == "":
		f.Errors.Add("title", msgRequired)
	case tooLong(f.Title, TitleMaxLength):
		f.Errors.Add("title", maxLengthMessage(TitleMaxLength, f.Title))
	}

	if f.Text == "" {
		f.Errors.Add("text", msgRequired)
	}

	if err := f.cleanSlug(checker, excludeID); err != nil {
		return false, err
	}
	return !f.Errors.Any(), nil
}

func (f *NoteForm) cleanSlug(checker SlugChecker, excludeID string) error {
	if f.Slug == "" {
		if f.Errors.Has("title") {
			return nil
		}
		f.Slug = Slugify(f.Title)
		if f.Slug == "" {
			f.Errors.Add("slug", msgEmptySlug)
			return nil
		}
	} else {
		if tooLong(f.Slug, SlugMaxLength) {
			f.Errors.Add("slug", maxLengthMessage(SlugMaxLength, f.Slug))
			return nil
		}
		if !ValidSlug(f.Slug) {
			f.Errors.Add("slug", msgInvalidSlug)
			return nil
		}
	}

	taken, err := checker.SlugExists(f.Slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		f.AddSlugTaken()
	}
	return nil
}

// AddSlugTaken records the duplicate-slug warning on the slug field.
func (f *NoteForm) AddSlugTaken() {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	f.Errors.Add("slug", f.Slug+SlugWarning)
}
