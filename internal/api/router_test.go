package api

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/isdelr/notes-be/internal/auth"
	"github.com/isdelr/notes-be/internal/database"
	"github.com/isdelr/notes-be/internal/models"
	"github.com/isdelr/notes-be/internal/services"
	"github.com/isdelr/notes-be/internal/urls"
	"github.com/isdelr/notes-be/internal/views"
	"github.com/isdelr/notes-be/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderedPage struct {
	name   string
	status int
	data   views.Data
}

// recordingRenderer remembers what each request rendered.
type recordingRenderer struct {
	mu    sync.Mutex
	pages []renderedPage
}

func (rr *recordingRenderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data views.Data) {
	rr.mu.Lock()
	rr.pages = append(rr.pages, renderedPage{name: name, status: status, data: data})
	rr.mu.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(name))
}

func (rr *recordingRenderer) last(t *testing.T) renderedPage {
	t.Helper()
	rr.mu.Lock()
	defer rr.mu.Unlock()
	require.NotEmpty(t, rr.pages, "nothing was rendered")
	return rr.pages[len(rr.pages)-1]
}

type testApp struct {
	router   http.Handler
	db       *sql.DB
	tokens   *auth.TokenManager
	renderer *recordingRenderer
	hub      *websocket.Hub
	notes    *services.NoteService
	users    *services.UserService
	author   models.User
	reader   models.User
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	events := services.NewEventService(db)
	app := &testApp{
		db:       db,
		tokens:   auth.NewTokenManager("test-secret", time.Hour),
		renderer: &recordingRenderer{},
		hub:      hub,
		users:    services.NewUserService(db, events),
	}
	app.notes = services.NewNoteService(db, events, hub)
	app.router = NewRouter(Dependencies{
		Tokens:      app.tokens,
		Renderer:    app.renderer,
		Notes:       app.notes,
		Users:       app.users,
		Events:      events,
		Hub:         hub,
		CORSOrigins: []string{"http://localhost:3000"},
	})

	app.author, err = app.users.CreateUser("author", "author-password")
	require.NoError(t, err)
	app.reader, err = app.users.CreateUser("reader", "reader-password")
	require.NoError(t, err)
	return app
}

func (a *testApp) createNote(t *testing.T, author models.User, title, slug string) models.Note {
	t.Helper()
	note, err := a.notes.CreateNote(models.Note{Title: title, Text: "Note text", Slug: slug, AuthorID: author.ID})
	require.NoError(t, err)
	return note
}

func (a *testApp) noteCount(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, a.db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&n))
	return n
}

// do sends a request as user; a zero user is anonymous. A non-nil form
// is posted urlencoded.
func (a *testApp) do(t *testing.T, user models.User, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user.ID != "" {
		token, err := a.tokens.GenerateJWT(user)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func TestPagesAvailableForAnonymousUser(t *testing.T) {
	app := newTestApp(t)

	for _, name := range []string{urls.Home, urls.Login, urls.Logout, urls.Signup} {
		t.Run(name, func(t *testing.T) {
			rec := app.do(t, models.User{}, http.MethodGet, urls.Reverse(name), nil)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestPagesAvailableForAuthenticatedUser(t *testing.T) {
	app := newTestApp(t)

	for _, name := range []string{urls.List, urls.Add, urls.Success} {
		t.Run(name, func(t *testing.T) {
			rec := app.do(t, app.reader, http.MethodGet, urls.Reverse(name), nil)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestNotePagesAvailability(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	cases := []struct {
		user   models.User
		status int
	}{
		{app.author, http.StatusOK},
		{app.reader, http.StatusNotFound},
	}
	for _, c := range cases {
		for _, name := range []string{urls.Detail, urls.Edit, urls.Delete} {
			t.Run(c.user.Username+" "+name, func(t *testing.T) {
				rec := app.do(t, c.user, http.MethodGet, urls.Reverse(name, note.Slug), nil)
				assert.Equal(t, c.status, rec.Code)
			})
		}
	}
}

func TestRedirectsForAnonymousClient(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")
	login := urls.Reverse(urls.Login)

	targets := []string{
		urls.Reverse(urls.List),
		urls.Reverse(urls.Success),
		urls.Reverse(urls.Add),
		urls.Reverse(urls.Detail, note.Slug),
		urls.Reverse(urls.Edit, note.Slug),
		urls.Reverse(urls.Delete, note.Slug),
	}
	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			rec := app.do(t, models.User{}, http.MethodGet, target, nil)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, login+"?next="+target, rec.Header().Get("Location"))
		})
	}
}

func TestUnknownSlugIsNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, app.author, http.MethodGet, urls.Reverse(urls.Detail, "missing"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFormPagesRejectOtherMethods(t *testing.T) {
	app := newTestApp(t)
	note := app.createNote(t, app.author, "Title", "note-slug")

	targets := []string{
		urls.Reverse(urls.Add),
		urls.Reverse(urls.Edit, note.Slug),
		urls.Reverse(urls.Delete, note.Slug),
		urls.Reverse(urls.Login),
		urls.Reverse(urls.Logout),
		urls.Reverse(urls.Signup),
	}
	for _, target := range targets {
		for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
			t.Run(method+" "+target, func(t *testing.T) {
				rec := app.do(t, app.author, method, target, nil)
				assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			})
		}
	}
	assert.Equal(t, 1, app.noteCount(t))
}
