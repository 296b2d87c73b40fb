package handlers

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"otoran/internal/config"
	"otoran/internal/digest"
	"otoran/internal/domain"
	"otoran/internal/logger"
	"otoran/internal/searchapi"
	"otoran/internal/tagfilter"

	"github.com/gorilla/mux"
)

// DigestService interface for digest operations
type DigestService interface {
	Plan(word, year, month, day string) (*digest.Plan, error)
	GetDigest(ctx context.Context, plan *digest.Plan) (*domain.Digest, error)
	LatestPath(ctx context.Context, word string) (string, error)
	GetPopularDigests(ctx context.Context) ([]domain.PopularDigest, error)
	Collections() []domain.Collection
}

// Handler holds the HTTP handlers
type Handler struct {
	digestService DigestService
	config        *config.Config
	templates     *template.Template
	static        fs.FS
	logger        *logger.Logger
}

// NewHandler creates a new handler
func NewHandler(digestService DigestService, cfg *config.Config, templates *template.Template, static fs.FS, log *logger.Logger) *Handler {
	log.Info("Handler initialized successfully")

	return &Handler{
		digestService: digestService,
		config:        cfg,
		templates:     templates,
		static:        static,
		logger:        log,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	// Static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(h.static))))

	router.HandleFunc("/daily/{word}/{year}/{month}/{day}", h.DigestHandler).Methods("GET")
	router.HandleFunc("/daily/{word}/", h.LatestDigestHandler).Methods("GET")
	router.HandleFunc("/homepage/", h.HomepageHandler).Methods("GET")
	router.HandleFunc("/", h.RootHandler).Methods("GET")

	// 404 handler for all other routes
	router.NotFoundHandler = http.HandlerFunc(h.NotFoundHandler)
}

// DigestHandler renders the digest of one collection for one day
func (h *Handler) DigestHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx, h.logger)

	vars := mux.Vars(r)
	plan, err := h.digestService.Plan(vars["word"], vars["year"], vars["month"], vars["day"])
	if err != nil {
		var dateErr digest.MalformedDateError
		switch {
		case errors.Is(err, digest.ErrUnknownCollection):
			log.Debug("No collection for word '%s', falling through", vars["word"])
			h.NotFoundHandler(w, r)
		case errors.As(err, &dateErr):
			log.Warn("Malformed digest date in %s: %v", r.URL.Path, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Error("Failed to plan digest %s: %v", r.URL.Path, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	if plan.CanonicalPath != r.URL.Path {
		target := plan.CanonicalPath
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		log.Info("Redirecting '%s' to canonical '%s'", r.URL.Path, target)
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	d, err := h.digestService.GetDigest(ctx, plan)
	if err != nil {
		var upstream *searchapi.UpstreamError
		if errors.As(err, &upstream) {
			log.Error("Search API failed for %s: %v", plan.CanonicalPath, err)
			http.Error(w, "Search API request failed", http.StatusBadGateway)
			return
		}
		log.Error("Failed to get digest %s: %v", plan.CanonicalPath, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	page := newDigestPage(d, tagfilter.NewCookieStorage(w, r), r.URL.Query())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "digest.html", page); err != nil {
		log.Error("Failed to execute digest template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Debug("Digest %s rendered successfully", plan.CanonicalPath)
}

// LatestDigestHandler redirects to the most recent digest of a collection
func (h *Handler) LatestDigestHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	word := mux.Vars(r)["word"]

	path, err := h.digestService.LatestPath(r.Context(), word)
	if err != nil {
		if errors.Is(err, digest.ErrUnknownCollection) {
			h.NotFoundHandler(w, r)
			return
		}
		log.Warn("Latest digest unavailable for '%s': %v", word, err)
		http.Redirect(w, r, "/homepage/", http.StatusFound)
		return
	}

	http.Redirect(w, r, path, http.StatusFound)
}

// RootHandler sends visitors to the latest digest of the default collection,
// or to the homepage when the latest day cannot be determined
func (h *Handler) RootHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	path, err := h.digestService.LatestPath(r.Context(), h.config.DefaultWord)
	if err != nil {
		log.Warn("Default digest unavailable, rendering homepage: %v", err)
		h.renderHomepage(w, r, "")
		return
	}

	http.Redirect(w, r, path, http.StatusFound)
}

// HomepageHandler handles the homepage
func (h *Handler) HomepageHandler(w http.ResponseWriter, r *http.Request) {
	latest, err := h.digestService.LatestPath(r.Context(), h.config.DefaultWord)
	if err != nil {
		logger.FromContext(r.Context(), h.logger).Warn("Latest digest unavailable for homepage: %v", err)
		latest = ""
	}
	h.renderHomepage(w, r, latest)
}

func (h *Handler) renderHomepage(w http.ResponseWriter, r *http.Request, latestPath string) {
	log := logger.FromContext(r.Context(), h.logger)

	popular, err := h.digestService.GetPopularDigests(r.Context())
	if err != nil {
		log.Error("Failed to get popular digests: %v", err)
		popular = []domain.PopularDigest{}
	}

	data := struct {
		LatestPath     string
		Collections    []domain.Collection
		PopularDigests []domain.PopularDigest
		BaseURL        string
	}{
		LatestPath:     latestPath,
		Collections:    h.digestService.Collections(),
		PopularDigests: popular,
		BaseURL:        h.config.BaseURL,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "homepage.html", data); err != nil {
		log.Error("Failed to execute homepage template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// NotFoundHandler handles 404 errors
func (h *Handler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	log.Info("404 page requested for path '%s'", r.URL.Path)

	data := struct {
		BaseURL string
		Path    string
	}{
		BaseURL: h.config.BaseURL,
		Path:    r.URL.Path,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.templates.ExecuteTemplate(w, "404.html", data); err != nil {
		log.Error("Failed to execute 404 template: %v", err)
	}
}
