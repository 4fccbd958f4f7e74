package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/notes-be/internal/api/handlers"
	"github.com/isdelr/notes-be/internal/auth"
	"github.com/isdelr/notes-be/internal/services"
	"github.com/isdelr/notes-be/internal/urls"
	"github.com/isdelr/notes-be/internal/views"
	"github.com/isdelr/notes-be/internal/websocket"
)

// Dependencies groups everything the router hands to its handlers.
type Dependencies struct {
	Tokens        *auth.TokenManager
	Renderer      views.Renderer
	Notes         services.NoteServiceProvider
	Users         services.UserServiceProvider
	Events        services.EventServiceProvider
	Hub           *websocket.Hub
	CORSOrigins   []string
	SecureCookies bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(d.Tokens.Session)

	// Initialize handlers
	noteHandler := handlers.NewNoteHandler(d.Notes, d.Renderer)
	accountHandler := handlers.NewAccountHandler(d.Users, d.Tokens, d.Renderer, d.SecureCookies)
	noteAPIHandler := handlers.NewNoteAPIHandler(d.Notes)
	userHandler := handlers.NewUserHandler(d.Users, d.Tokens, d.SecureCookies)
	eventHandler := handlers.NewEventHandler(d.Events)
	wsHandler := handlers.NewWebSocketHandler(d.Hub, d.CORSOrigins)

	// HTML site
	r.Get(urls.Pattern(urls.Home), noteHandler.Home)
	r.Get(urls.Pattern(urls.Login), accountHandler.Login)
	r.Post(urls.Pattern(urls.Login), accountHandler.Login)
	r.Get(urls.Pattern(urls.Logout), accountHandler.Logout)
	r.Post(urls.Pattern(urls.Logout), accountHandler.Logout)
	r.Get(urls.Pattern(urls.Signup), accountHandler.Signup)
	r.Post(urls.Pattern(urls.Signup), accountHandler.Signup)

	r.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired(urls.Reverse(urls.Login)))

		r.Get(urls.Pattern(urls.List), noteHandler.List)
		r.Get(urls.Pattern(urls.Success), noteHandler.Success)
		r.Get(urls.Pattern(urls.Detail), noteHandler.Detail)
		r.Get(urls.Pattern(urls.Add), noteHandler.Add)
		r.Post(urls.Pattern(urls.Add), noteHandler.Add)
		r.Get(urls.Pattern(urls.Edit), noteHandler.Edit)
		r.Post(urls.Pattern(urls.Edit), noteHandler.Edit)
		r.Get(urls.Pattern(urls.Delete), noteHandler.Delete)
		r.Post(urls.Pattern(urls.Delete), noteHandler.Delete)
	})

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		// Public authentication routes
		r.Post("/auth/register", userHandler.Register)
		r.Post("/auth/login", userHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireToken)

			r.Get("/auth/me", userHandler.GetMe)
			r.Get("/ws", wsHandler.Serve)
			r.Get("/events", eventHandler.GetRecent)

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", noteAPIHandler.GetAll)
				r.Post("/", noteAPIHandler.Create)
				r.Route("/{"+urls.SlugParam+"}", func(r chi.Router) {
					r.Get("/", noteAPIHandler.Get)
					r.Put("/", noteAPIHandler.Update)
					r.Delete("/", noteAPIHandler.Delete)
				})
			})
		})
	})

	return r
}
