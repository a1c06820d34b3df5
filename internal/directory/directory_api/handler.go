package directory_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"oncampus/internal/collection"
	"oncampus/internal/directory"
	"oncampus/internal/images"
	"oncampus/internal/logger"
	"oncampus/internal/models"
	"oncampus/internal/qr"
	"oncampus/internal/utils"
)

const maxBodyBytes = 1 << 20

// Handler serves the directory API and pages.
type Handler struct {
	Directory *directory.Directory
	Images    *images.Resolver
	QR        *qr.QRGenerator
	Logger    *logger.Logger
}

func NewHandler(dir *directory.Directory, log *logger.Logger) *Handler {
	return &Handler{
		Directory: dir,
		Images:    images.Default(),
		QR:        qr.NewQRGenerator(256),
		Logger:    log,
	}
}

// NewRouter returns a chi router with logging and recovery middleware and
// every directory route registered.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(h.Logger))
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/clubs", func(r chi.Router) {
			r.Get("/", listHandler(h.Directory.Clubs, nil))
			r.Post("/", addHandler(h.Logger, h.Directory.Clubs))
			r.Delete("/{id}", removeHandler(h.Logger, h.Directory.Clubs))
		})
		r.Route("/events", func(r chi.Router) {
			r.Get("/", listHandler(h.Directory.Events, models.SortEventsByDate))
			r.Post("/", addHandler(h.Logger, h.Directory.Events))
			r.Delete("/{id}", removeHandler(h.Logger, h.Directory.Events))
		})
		r.Route("/benefits", func(r chi.Router) {
			r.Get("/", listHandler(h.Directory.Benefits, nil))
			r.Post("/", addHandler(h.Logger, h.Directory.Benefits))
			r.Delete("/{id}", removeHandler(h.Logger, h.Directory.Benefits))
			r.Get("/{id}/qr", h.BenefitQR)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/clubs", http.StatusFound)
	})
	r.Get("/clubs", h.ClubsPage)
	r.Get("/events", h.EventsPage)
	r.Get("/benefits", h.BenefitsPage)
}

// ListResponse is the body of every collection GET.
type ListResponse[T any] struct {
	Items       []T  `json:"items"`
	Initialized bool `json:"initialized"`
}

func listHandler[T collection.Entity[T]](store *collection.Store[T], order func([]T)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := store.Items()
		if order != nil {
			order(items)
		}
		sendJSONResponse(w, http.StatusOK, ListResponse[T]{
			Items:       items,
			Initialized: store.Initialized(),
		})
	}
}

func addHandler[T collection.Entity[T]](log *logger.Logger, store *collection.Store[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&item); err != nil {
			log.Warn("API", fmt.Sprintf("Add %s: invalid body: %v", store.Name(), err))
			sendJSONResponse(w, http.StatusBadRequest, utils.ErrorResponse("Invalid JSON body", err.Error()))
			return
		}

		created, err := store.Add(r.Context(), item)
		if err != nil {
			writeStoreError(w, log, "Add "+store.Name(), err)
			return
		}
		sendJSONResponse(w, http.StatusCreated, created)
	}
}

func removeHandler[T collection.Entity[T]](log *logger.Logger, store *collection.Store[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		removed, err := store.Remove(r.Context(), id)
		if err != nil {
			writeStoreError(w, log, "Remove "+store.Name(), err)
			return
		}
		if !removed {
			sendJSONResponse(w, http.StatusNotFound, utils.ErrorResponse("Not found", fmt.Sprintf("no %s entry with id %s", store.Name(), id)))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeStoreError(w http.ResponseWriter, log *logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, collection.ErrNotInitialized):
		log.Warn("API", fmt.Sprintf("%s: %v", op, err))
		sendJSONResponse(w, http.StatusServiceUnavailable, utils.ErrorResponse("Directory is still loading", err.Error()))
	default:
		log.Error("API", fmt.Sprintf("%s: %v", op, err))
		sendJSONResponse(w, http.StatusInternalServerError, utils.ErrorResponse("Could not save changes", err.Error()))
	}
}

// Health reports whether each collection finished initializing.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]bool{
		directory.ClubKind.Name:    h.Directory.Clubs.Initialized(),
		directory.EventKind.Name:   h.Directory.Events.Initialized(),
		directory.BenefitKind.Name: h.Directory.Benefits.Initialized(),
	}
	code := http.StatusOK
	for _, ready := range status {
		if !ready {
			code = http.StatusServiceUnavailable
		}
	}
	sendJSONResponse(w, code, utils.SuccessResponse("ok", status))
}

// BenefitQR serves a PNG QR code pointing at the benefit's redirect URL.
func (h *Handler) BenefitQR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	benefit, ok := h.Directory.Benefits.Find(id)
	if !ok {
		sendJSONResponse(w, http.StatusNotFound, utils.ErrorResponse("Not found", "no benefit with id "+id))
		return
	}

	png, err := h.QR.BenefitPNG(benefit)
	if errors.Is(err, qr.ErrNoRedirect) {
		sendJSONResponse(w, http.StatusNotFound, utils.ErrorResponse("Not found", err.Error()))
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("BenefitQR %s: %v", id, err))
		sendJSONResponse(w, http.StatusInternalServerError, utils.ErrorResponse("Could not generate QR code", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func sendJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	// Headers are already sent if encoding fails, so the error is dropped.
	_ = utils.WriteJSON(w, status, data)
}
