package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/murvyn/todo-app/internal/logger"
	"github.com/murvyn/todo-app/internal/service"
	"github.com/murvyn/todo-app/internal/store"
	"github.com/murvyn/todo-app/internal/utils"
	"github.com/murvyn/todo-app/models"
)

// todoRequest is the JSON body of todo create and update.
type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) getTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		writeMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	todoPage, err := h.services.TodoService.GetTodos(ctx, user.ID, page, limit)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during todos retrieval")
		writeMessage(w, "Failed to fetch todos", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.TodoListResponse{
		Todos:      todoPage.Todos,
		TotalCount: todoPage.TotalCount,
		HasMore:    todoPage.HasMore,
		Message:    "Todos retrieved successfully.",
	}, http.StatusOK)
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		writeMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, "Title and description are required", http.StatusBadRequest)
		return
	}

	todo, err := h.services.TodoService.CreateTodo(ctx, user.ID, req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid todo data provided")
			writeMessage(w, "Title and description are required", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during todo creation")
			writeMessage(w, "Failed to create todo", http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.TodoResponse{Todo: todo, Message: "Todo created successfully."}, http.StatusCreated)
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		writeMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	todoID := chi.URLParam(r, "id")

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeMessage(w, "Title and description are required", http.StatusBadRequest)
		return
	}

	todo, err := h.services.TodoService.UpdateTodo(ctx, user.ID, todoID, req.Title, req.Description)
	if err != nil {
		h.writeTodoError(w, log, err, "Failed to update todo")
		return
	}

	utils.WriteJSON(w, models.TodoResponse{Todo: todo, Message: "Todo updated successfully."}, http.StatusOK)
}

func (h *Handler) toggleTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		writeMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	todoID := chi.URLParam(r, "id")

	todo, err := h.services.TodoService.ToggleTodo(ctx, user.ID, todoID)
	if err != nil {
		h.writeTodoError(w, log, err, "Failed to mark todo as done")
		return
	}

	utils.WriteJSON(w, models.TodoResponse{Todo: todo, Message: "Todo marked as done successfully."}, http.StatusOK)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetAuthUserFromContext(ctx)
	if !ok {
		writeMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	todoID := chi.URLParam(r, "id")

	if err := h.services.TodoService.DeleteTodo(ctx, user.ID, todoID); err != nil {
		h.writeTodoError(w, log, err, "Failed to delete todo")
		return
	}

	writeMessage(w, "Todo deleted successfully.", http.StatusOK)
}

// writeTodoError maps todo service errors onto HTTP responses shared by the
// update, toggle and delete handlers.
func (h *Handler) writeTodoError(w http.ResponseWriter, log *logger.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		log.Err(err).Msg("invalid todo data provided")
		writeMessage(w, "Title and description are required", http.StatusBadRequest)
	case errors.Is(err, store.ErrTodoNotFound):
		log.Err(err).Msg("todo not found")
		writeMessage(w, "Todo not found", http.StatusNotFound)
	default:
		log.Err(err).Msg("unexpected error occurred during todo operation")
		writeMessage(w, fallback, http.StatusInternalServerError)
	}
}
