package api

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hiehoo/tnetbot/internal/dispatch"
	"github.com/hiehoo/tnetbot/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Submitter queues one inbound chat event for the engine. The dispatch loop
// satisfies it.
type Submitter interface {
	Submit(ctx context.Context, e dispatch.Event) error
}

// EventRequest is the wire form of one inbound chat event.
type EventRequest struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Kind      string `json:"kind"`
	Campaign  string `json:"campaign"`
	Selection string `json:"selection"`
	MessageID int64  `json:"message_id"`
}

type AppDeps struct {
	Store *storage.Store
	Loop  Submitter
	Token string
}

// NewAppHandler builds the operator and transport-facing HTTP surface.
// Everything except the health probe sits behind bearer auth.
func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))

		r.Post("/events", handleSubmitEvent(deps))
		r.Get("/stats", handleStats(deps))
		r.Get("/users/{id}", handleUserDetail(deps))
		r.Get("/users.csv", handleExportUsers(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func handleSubmitEvent(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req EventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		if req.UserID == 0 {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "user_id is required")
			return
		}
		switch req.Kind {
		case dispatch.EventStart:
		case dispatch.EventButton:
			if req.Selection == "" {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "selection is required for button events")
				return
			}
		default:
			httpError(w, http.StatusBadRequest, "invalid_request_error", "unknown event kind %q", req.Kind)
			return
		}

		e := dispatch.Event{
			UserID:    req.UserID,
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Kind:      req.Kind,
			Campaign:  req.Campaign,
			Selection: req.Selection,
			MessageID: req.MessageID,
		}
		if err := deps.Loop.Submit(r.Context(), e); err != nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "failed to queue event: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"status": "queued"})
	}
}

func handleStats(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.Store.Stats()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to collect stats: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}
}

func handleUserDetail(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid user id")
			return
		}

		detail, err := deps.Store.UserDetail(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get user: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(detail)
	}
}

func handleExportUsers(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := deps.Store.ExportUsers()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to export users: %v", err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)

		cw := csv.NewWriter(w)
		cw.Write([]string{"User ID", "Username", "First Name", "Last Name", "Join Date", "Last Interaction", "Purchased", "Campaign", "Purchase Count"})
		for _, u := range rows {
			cw.Write([]string{
				strconv.FormatInt(u.ID, 10),
				u.Username,
				u.FirstName,
				u.LastName,
				u.JoinedAt.UTC().Format("2006-01-02 15:04:05"),
				u.LastInteraction.UTC().Format("2006-01-02 15:04:05"),
				strconv.FormatBool(u.Purchased),
				u.Campaign,
				strconv.Itoa(u.PurchaseCount),
			})
		}
		cw.Flush()
	}
}
