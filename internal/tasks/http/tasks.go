package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

type TasksHandler struct {
	TaskService *service.TaskService
}

// HandleList lists tasks, optionally by status.
//
//	@Summary		List tasks
//	@Tags			Tasks
//	@Produce		json
//	@Param			status	query		string										false	"pending, in_progress or completed"
//	@Success		200		{object}	tasksdk.DataResponse[[]tasksdk.TaskResponse]	"Tasks"
//	@Failure		400		{object}	tasksdk.ErrorResponse						"Unknown status"
//	@Failure		401		{object}	tasksdk.ErrorResponse						"Missing or invalid token"
//	@Security		BearerAuth
//	@Router			/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.TaskService.ListTasks(r.Context(), domain.TaskFilter{
		Status: domain.TaskStatus(r.URL.Query().Get("status")),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, toTaskResponses(tasks), "")
}

// HandleGet returns one task.
//
//	@Summary		Get task
//	@Tags			Tasks
//	@Produce		json
//	@Param			id	path		int										true	"Task ID"
//	@Success		200	{object}	tasksdk.DataResponse[tasksdk.TaskResponse]	"Task"
//	@Failure		404	{object}	tasksdk.ErrorResponse						"Task not found"
//	@Security		BearerAuth
//	@Router			/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, tasksdk.ErrTaskNotFound)
	if !ok {
		return
	}

	t, err := h.TaskService.GetTask(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, toTaskResponse(t), "")
}

// HandleCreate adds a task for an existing user.
//
//	@Summary		Create task
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.CreateTaskRequest					true	"Task"
//	@Success		201		{object}	tasksdk.DataResponse[tasksdk.TaskResponse]	"Created task"
//	@Failure		400		{object}	tasksdk.ErrorResponse						"Validation failed"
//	@Failure		404		{object}	tasksdk.ErrorResponse						"Owner not found"
//	@Security		BearerAuth
//	@Router			/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req tasksdk.CreateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	t, err := h.TaskService.CreateTask(r.Context(), domain.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      domain.TaskStatus(req.Status),
		UserID:      req.UserID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, toTaskResponse(t), "Task created successfully")
}

// HandleUpdate changes the fields present in the body.
//
//	@Summary		Update task
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int											true	"Task ID"
//	@Param			request	body		tasksdk.UpdateTaskRequest					true	"Fields to change"
//	@Success		200		{object}	tasksdk.DataResponse[tasksdk.TaskResponse]	"Updated task"
//	@Failure		400		{object}	tasksdk.ErrorResponse						"Validation failed"
//	@Failure		404		{object}	tasksdk.ErrorResponse						"Task or new owner not found"
//	@Security		BearerAuth
//	@Router			/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, tasksdk.ErrTaskNotFound)
	if !ok {
		return
	}

	var req tasksdk.UpdateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	upd := domain.TaskUpdate{
		Title:       trimmed(req.Title),
		Description: trimmed(req.Description),
		UserID:      req.UserID,
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		upd.Status = &s
	}

	t, err := h.TaskService.UpdateTask(r.Context(), id, upd)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, toTaskResponse(t), "Task updated successfully")
}

// HandleDelete removes a task.
//
//	@Summary		Delete task
//	@Tags			Tasks
//	@Produce		json
//	@Param			id	path		int							true	"Task ID"
//	@Success		200	{object}	tasksdk.DataResponse[any]	"Deleted"
//	@Failure		404	{object}	tasksdk.ErrorResponse		"Task not found"
//	@Security		BearerAuth
//	@Router			/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, tasksdk.ErrTaskNotFound)
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, nil, "Task deleted successfully")
}
