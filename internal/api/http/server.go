package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	appAuth "github.com/prashana14/StudyReuse-sub000/internal/application/auth"
	appBarter "github.com/prashana14/StudyReuse-sub000/internal/application/barter"
	appItem "github.com/prashana14/StudyReuse-sub000/internal/application/item"
	appNotification "github.com/prashana14/StudyReuse-sub000/internal/application/notification"
	appUser "github.com/prashana14/StudyReuse-sub000/internal/application/user"
	domainUser "github.com/prashana14/StudyReuse-sub000/internal/domain/user"
	"github.com/prashana14/StudyReuse-sub000/internal/infrastructure/sse"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authSvc             *appAuth.Service
	userSvc             *appUser.Service
	itemSvc             *appItem.Service
	barterSvc           *appBarter.Service
	notificationSvc     *appNotification.Service
	sseHub              *sse.Hub
	sessionCookieName   string
	sessionCookieSecure bool
}

func NewServer(
	authSvc *appAuth.Service,
	userSvc *appUser.Service,
	itemSvc *appItem.Service,
	barterSvc *appBarter.Service,
	notificationSvc *appNotification.Service,
	sseHub *sse.Hub,
	sessionCookieName string,
	sessionCookieSecure bool,
) *Server {
	return &Server{
		authSvc:             authSvc,
		userSvc:             userSvc,
		itemSvc:             itemSvc,
		barterSvc:           barterSvc,
		notificationSvc:     notificationSvc,
		sseHub:              sseHub,
		sessionCookieName:   sessionCookieName,
		sessionCookieSecure: sessionCookieSecure,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/bootstrap", s.bootstrapAdmin)
			r.Post("/login", s.login)
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/logout", s.logout)
				r.Get("/me", s.me)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Route("/items", func(r chi.Router) {
				r.Post("/", s.createItem)
				r.Get("/", s.listItems)
				r.Get("/{itemId}", s.getItem)
				r.Patch("/{itemId}", s.updateItem)
				r.Put("/{itemId}/status", s.setItemStatus)
			})

			r.Route("/barters", func(r chi.Router) {
				r.Post("/", s.proposeBarter)
				r.Get("/", s.listMyBarters)
				r.With(s.requireRole(string(domainUser.RoleAdmin))).Get("/all", s.listAllBarters)
				r.Get("/{barterId}", s.getBarter)
				r.Post("/{barterId}/accept", s.acceptBarter)
				r.Post("/{barterId}/reject", s.rejectBarter)
				r.Put("/{barterId}/status", s.updateBarterStatus)
				r.Delete("/{barterId}", s.cancelBarter)
				r.Post("/{barterId}/withdraw", s.withdrawBarter)
			})

			r.Route("/users", func(r chi.Router) {
				r.With(s.requireRole(string(domainUser.RoleAdmin))).Get("/", s.listUsers)
				r.Get("/{userId}", s.getUser)
				r.With(s.requireRole(string(domainUser.RoleAdmin))).Patch("/{userId}", s.updateUser)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", s.listNotifications)
				r.Get("/unread-count", s.unreadNotificationCount)
				r.Post("/{notificationId}/read", s.markNotificationRead)
				r.Post("/read-all", s.markAllNotificationsRead)
				r.Get("/sse", s.sseEndpoint)
			})
		})
	})

	return r
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func parseLimitOffset(r *http.Request, defaultLimit, maxLimit int) (int, int) {
	limit := defaultLimit
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			limit = l
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil {
			offset = o
		}
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
