package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"chatapi/internal/config"
	"chatapi/internal/domain"
	"chatapi/internal/security"
	"chatapi/internal/service"
	"chatapi/internal/store/postgres"
	"chatapi/internal/store/sqlite"
	"chatapi/internal/upload"
	"chatapi/internal/ws"
)

// NewRouter constructs the main HTTP router and wires routes, services, and
// middleware. The repositories are backed by PostgreSQL when cfg.DatabaseURL
// is set and SQLite otherwise; db must already be opened and migrated.
func NewRouter(
	cfg *config.Config,
	db *sql.DB,
	registry *ws.Registry,
	tokenSvc *security.TokenService,
	passwordHasher *security.PasswordHasher,
	log *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Repositories
	var userRepo domain.UserRepository
	var msgRepo domain.MessageRepository
	if cfg.DatabaseURL != "" {
		userRepo = postgres.NewUserRepo(db)
		msgRepo = postgres.NewMessageRepo(db)
	} else {
		userRepo = sqlite.NewUserRepo(db)
		msgRepo = sqlite.NewMessageRepo(db)
	}

	uploads := upload.NewDiskStore(cfg.UploadDir)

	// Realtime components
	presence := ws.NewPresence(registry, log)
	delivery := ws.NewDelivery(registry, log)

	// Services
	authSvc := service.NewAuthService(userRepo, tokenSvc, passwordHasher, uploads)
	chatSvc := service.NewChatService(userRepo, msgRepo, uploads, delivery, log)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Auth routes (no auth required)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handleSignup(authSvc))
			r.Post("/login", handleLogin(authSvc))
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokenSvc, userRepo))

			r.Get("/auth/check", handleCheckAuth())
			r.Put("/auth/update-profile", handleUpdateProfile(authSvc))

			r.Route("/messages", func(r chi.Router) {
				r.Get("/users", handleRoster(chatSvc))
				r.Get("/{userID}", handleConversation(chatSvc))
				r.Put("/mark/{messageID}", handleMarkSeen(chatSvc))
				r.Post("/send/{userID}", handleSendMessage(chatSvc))
			})
		})
	})

	// Stored blobs (message images, profile pictures)
	r.Get("/uploads/{filename}", serveUpload(cfg))

	// Live connection endpoint
	r.Get("/ws", ws.MakeHandler(registry, presence, tokenSvc, userRepo, cfg.CORSOrigins, log))

	return r
}

// writeJSON is a small helper to send JSON responses.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain sentinel errors to HTTP status codes. Unknown
// errors (storage failures included) surface as 500 without leaking detail.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
