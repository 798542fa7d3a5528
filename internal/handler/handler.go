package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	_ "github.com/mtlprog/taskdesk/docs" // Import generated docs
	"github.com/mtlprog/taskdesk/internal/domain"
	"github.com/mtlprog/taskdesk/internal/handler/dto"
	"github.com/mtlprog/taskdesk/internal/service"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger reports whether the persistence layer is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	taskService *service.TaskService
	db          Pinger
}

// New creates a new Handler instance.
func New(taskService *service.TaskService, db Pinger) *Handler {
	return &Handler{
		taskService: taskService,
		db:          db,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Probes
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /readyz", h.handleReadyz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// API v1 routes
	mux.HandleFunc("GET /api/v1/tasks", h.handleListTasks)
	mux.HandleFunc("POST /api/v1/tasks", h.handleCreateTask)
	mux.HandleFunc("GET /api/v1/tasks/{id}", h.handleGetTask)
	mux.HandleFunc("PATCH /api/v1/tasks/{id}", h.handleUpdateTask)
	mux.HandleFunc("PUT /api/v1/tasks/{id}", h.handleUpdateTask)
	mux.HandleFunc("DELETE /api/v1/tasks/{id}", h.handleDeleteTask)
}

// handleHealthz reports that the process is serving requests.
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "healthy"})
}

// handleReadyz returns 200 if the database is reachable, 503 with the reason otherwise.
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /readyz [get]
func (h *Handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		slog.Error("database health check failed", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:   "unhealthy",
			Database: "unreachable",
			Reason:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "healthy", Database: "connected"})
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError maps err to its status category and writes the error body.
func respondError(w http.ResponseWriter, err error) {
	status, body := dto.MapDomainError(err)
	respondJSON(w, status, body)
}

// extractTaskID parses the task ID path parameter.
// Returns (taskID, true) if valid, (0, false) if invalid (error already sent to client).
func extractTaskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	taskID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return 0, false
	}
	return taskID, true
}
