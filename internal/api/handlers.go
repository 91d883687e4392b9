package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"codesync-server/internal/exec"
	"codesync-server/internal/room"
	"codesync-server/internal/ws"
)

type API struct {
	hub   *ws.Hub
	rooms *room.Directory
	exec  *exec.Client
	log   *slog.Logger
}

func New(hub *ws.Hub, rooms *room.Directory, execClient *exec.Client, log *slog.Logger) *API {
	return &API{
		hub:   hub,
		rooms: rooms,
		exec:  execClient,
		log:   log,
	}
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("api.encode", "err", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) StatsHandler(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"active_rooms":   a.rooms.RoomCount(),
		"active_clients": a.hub.ClientCount(),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

type CompileRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// CompileHandler proxies a run request to the execution engine and
// returns the normalized output as plain text.
func (a *API) CompileHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Code == "" || req.Language == "" {
		errorResponse(w, http.StatusBadRequest, "Missing required parameters: code and language")
		return
	}

	output, err := a.exec.Execute(r.Context(), req.Language, req.Code)
	if err != nil {
		if errors.Is(err, exec.ErrUnsupportedLanguage) {
			errorResponse(w, http.StatusBadRequest, "Unsupported language: "+req.Language)
			return
		}
		a.log.Error("api.compile", "language", req.Language, "err", err)
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(output))
}

// Recover converts panics in request handling into a generic 500 so a
// bad request can never take the process down.
func Recover(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("api.panic", "path", r.URL.Path, "panic", rec)
				errorResponse(w, http.StatusInternalServerError, "Something went wrong!")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
