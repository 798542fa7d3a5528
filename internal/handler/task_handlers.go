package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/mtlprog/taskdesk/internal/config"
	"github.com/mtlprog/taskdesk/internal/domain"
	"github.com/mtlprog/taskdesk/internal/handler/dto"
	"github.com/mtlprog/taskdesk/internal/service"
)

// handleCreateTask creates a new task.
// @Summary Create a new task
// @Description Creates a complaint record. Status defaults to pending.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeCreateTask(r.Body)
	if err != nil {
		respondError(w, err)
		return
	}

	params := service.CreateTaskParams{
		ComplaintNumber: req.ComplaintNumber,
		Remarks:         req.Remarks,
		CreatedBy:       req.CreatedBy,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		params.Status = &status
	}

	task, err := h.taskService.Create(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// handleGetTask retrieves a single task.
// @Summary Get task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), taskID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleUpdateTask applies a partial update. Served for both PATCH and PUT.
// @Summary Update task
// @Description Changes only the supplied fields. "remarks": null clears remarks. Unknown fields are rejected.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks/{id} [patch]
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	patch, err := dto.DecodeTaskPatch(r.Body)
	if err != nil {
		respondError(w, err)
		return
	}

	task, err := h.taskService.Update(r.Context(), taskID, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleDeleteTask hard-deletes a task.
// @Summary Delete task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.DeleteTaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), taskID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.DeleteTaskResponse{Message: "task deleted", ID: taskID})
}

// handleListTasks returns a page of tasks ordered by id.
// @Summary List tasks
// @Description Get tasks with optional equality filters
// @Tags tasks
// @Produce json
// @Param status query string false "pending, in_progress or resolved"
// @Param created_by query string false "Author"
// @Param skip query int false "Rows to skip (default 0)"
// @Param limit query int false "Page size (1-500, default 100)"
// @Success 200 {object} dto.TasksListResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	filters, err := parseListFilters(r.URL.Query())
	if err != nil {
		respondError(w, err)
		return
	}

	params := service.ListTasksParams{
		CreatedBy: filters.CreatedBy,
		Skip:      filters.Skip,
		Limit:     filters.Limit,
	}
	if filters.Status != nil {
		status := domain.TaskStatus(*filters.Status)
		params.Status = &status
	}

	page, err := h.taskService.List(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTasksListResponse(page.Tasks, page.Total, page.Skip, page.Limit))
}

// parseListFilters reads list query parameters. Malformed numbers are
// validation errors rather than silently replaced by defaults.
func parseListFilters(query url.Values) (dto.ListTasksFilters, error) {
	filters := dto.ListTasksFilters{
		Skip:  0,
		Limit: config.DefaultListLimit,
	}

	// Empty values mean "no filter".
	if status := query.Get("status"); status != "" {
		filters.Status = &status
	}
	if createdBy := query.Get("created_by"); createdBy != "" {
		filters.CreatedBy = &createdBy
	}

	var err error
	if filters.Skip, err = intParam(query, "skip", filters.Skip); err != nil {
		return filters, err
	}
	if filters.Limit, err = intParam(query, "limit", filters.Limit); err != nil {
		return filters, err
	}

	return filters, nil
}

func intParam(query url.Values, name string, def int) (int, error) {
	raw := query.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}
