package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/isdelr/notes-be/internal/forms"
	"github.com/isdelr/notes-be/internal/models"
	"github.com/isdelr/notes-be/internal/urls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteValues(title, text, slug string) url.Values {
	return url.Values{"title": {title}, "text": {text}, "slug": {slug}}
}

func TestUserCanCreateNote(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, app.author, http.MethodPost, urls.Reverse(urls.Add), noteValues("New title", "New text", "new-slug"))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, urls.Reverse(urls.Success), rec.Header().Get("Location"))
	require.Equal(t, 1, app.noteCount(t))

	note, err := app.notes.GetNoteForAuthor("new-slug", app.author.ID)
	require.NoError(t, err)
	assert.Equal(t, "New title", note.Title)
	assert.Equal(t, "New text", note.Text)
	assert.Equal(t, app.author.ID, note.AuthorID)
}

func TestAnonymousUserCantCreateNote(t *testing.T) {
	app := newTestApp(t)
	target := urls.Reverse(urls.Add)

	rec := app.do(t, models.User{}, http.MethodPost, target, noteValues("New title", "New text", "new-slug"))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, urls.Reverse(urls.Login)+"?next="+target, rec.Header().Get("Location"))
	assert.Equal(t, 0, app.noteCount(t))
}

func TestNotUniqueSlug(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	rec := app.do(t, app.author, http.MethodPost, urls.Reverse(urls.Add), noteValues("Other", "Other text", note.Slug))
	assert.Equal(t, http.StatusOK, rec.Code)

	page := app.renderer.last(t)
	assert.Equal(t, "notes/form.html", page.name)
	form, ok := page.data["form"].(forms.NoteForm)
	require.True(t, ok)
	assert.Equal(t, []string{note.Slug + forms.SlugWarning}, form.Errors.Get("slug"))
	assert.Equal(t, 1, app.noteCount(t))
}

func TestEmptySlugIsDerivedFromTitle(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, app.author, http.MethodPost, urls.Reverse(urls.Add), noteValues("Заметка про кота", "Text", ""))
	assert.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, 1, app.noteCount(t))

	note, err := app.notes.GetNoteForAuthor("zametka-pro-kota", app.author.ID)
	require.NoError(t, err)
	assert.Equal(t, forms.Slugify("Заметка про кота"), note.Slug)
}

func TestInvalidFormIsRerendered(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, app.author, http.MethodPost, urls.Reverse(urls.Add), noteValues("", "", "bad slug!"))
	assert.Equal(t, http.StatusOK, rec.Code)

	form := app.renderer.last(t).data["form"].(forms.NoteForm)
	assert.True(t, form.Errors.Has("title"))
	assert.True(t, form.Errors.Has("text"))
	assert.True(t, form.Errors.Has("slug"))
	assert.Equal(t, 0, app.noteCount(t))
}

func TestAuthorCanEditNote(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	rec := app.do(t, app.author, http.MethodPost, urls.Reverse(urls.Edit, note.Slug), noteValues("New title", "New text", "new-slug"))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, urls.Reverse(urls.Success), rec.Header().Get("Location"))

	updated, err := app.notes.GetNoteForAuthor("new-slug", app.author.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ID, updated.ID)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "New text", updated.Text)
}

func TestAuthorCanEditNoteWithoutSlug(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	form := url.Values{"title": {"new note title"}, "text": {"new note text"}}
	rec := app.do(t, app.author, http.MethodPost, urls.Reverse(urls.Edit, note.Slug), form)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, urls.Reverse(urls.Success), rec.Header().Get("Location"))

	updated, err := app.notes.GetNoteForAuthor(forms.Slugify("new note title"), app.author.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ID, updated.ID)
	assert.Equal(t, "new-note-title", updated.Slug)
	assert.Equal(t, "new note title", updated.Title)
	assert.Equal(t, "new note text", updated.Text)
}

func TestEditKeepsOwnSlug(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	rec := app.do(t, app.author, http.MethodPost, urls.Reverse(urls.Edit, note.Slug), noteValues("New title", "New text", note.Slug))
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestOtherUserCantEditNote(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	rec := app.do(t, app.reader, http.MethodPost, urls.Reverse(urls.Edit, note.Slug), noteValues("New title", "New text", "new-slug"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	unchanged, err := app.notes.GetNoteForAuthor(note.Slug, app.author.ID)
	require.NoError(t, err)
	assert.Equal(t, note.Title, unchanged.Title)
	assert.Equal(t, note.Text, unchanged.Text)
}

func TestAuthorCanDeleteNote(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	rec := app.do(t, app.author, http.MethodPost, urls.Reverse(urls.Delete, note.Slug), url.Values{})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, urls.Reverse(urls.Success), rec.Header().Get("Location"))
	assert.Equal(t, 0, app.noteCount(t))
}

func TestOtherUserCantDeleteNote(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	rec := app.do(t, app.reader, http.MethodPost, urls.Reverse(urls.Delete, note.Slug), url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, app.noteCount(t))
}

func TestNotesListOnlyShowsOwnNotes(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	rec := app.do(t, app.author, http.MethodGet, urls.Reverse(urls.List), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := app.renderer.last(t).data["object_list"].([]models.Note)
	require.Len(t, list, 1)
	assert.Equal(t, note.ID, list[0].ID)

	rec = app.do(t, app.reader, http.MethodGet, urls.Reverse(urls.List), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, app.renderer.last(t).data["object_list"])
}

func TestNotesListKeepsCreationOrder(t *testing.T) {
	app := newTestApp(t)
	slugs := []string{"first", "second", "third", "fourth", "fifth"}
	for _, s := range slugs {
		app.createNote(t, app.author, "Note "+s, s)
	}

	app.do(t, app.author, http.MethodGet, urls.Reverse(urls.List), nil)
	list := app.renderer.last(t).data["object_list"].([]models.Note)
	require.Len(t, list, len(slugs))
	for i, s := range slugs {
		assert.Equal(t, s, list[i].Slug)
	}
}

func TestFormPagesContainForm(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	for _, target := range []string{urls.Reverse(urls.Add), urls.Reverse(urls.Edit, note.Slug)} {
		t.Run(target, func(t *testing.T) {
			app.do(t, app.author, http.MethodGet, target, nil)
			page := app.renderer.last(t)
			assert.Equal(t, "notes/form.html", page.name)
			assert.IsType(t, forms.NoteForm{}, page.data["form"])
		})
	}

	form := app.renderer.last(t).data["form"].(forms.NoteForm)
	assert.Equal(t, note.Title, form.Title)
	assert.Equal(t, note.Slug, form.Slug)
}

func TestDetailPageShowsNote(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	app.do(t, app.author, http.MethodGet, urls.Reverse(urls.Detail, note.Slug), nil)
	page := app.renderer.last(t)
	assert.Equal(t, "notes/detail.html", page.name)
	assert.Equal(t, note.ID, page.data["note"].(models.Note).ID)
}
