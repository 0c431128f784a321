package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/evergreen-power/apiserver/internal/services"
	"github.com/evergreen-power/apiserver/internal/store"
	"github.com/evergreen-power/apiserver/internal/validation"
	"github.com/evergreen-power/apiserver/types"
)

// UserHandler provides the admin-only account-management endpoints.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user routes; the entire surface is admin-gated.
func UserRouter(r chi.Router, userService *services.UserService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewUserHandler(userService)

	r.Use(authMiddleware, RequireAdmin)
	r.Get("/", handler.ListUsers)
	r.Post("/", handler.CreateUser)
	r.Route("/{userID}", func(r chi.Router) {
		r.Patch("/", handler.UpdateUser)
		r.Delete("/", handler.DeleteUser)
		r.Post("/status", handler.SetStatus)
		r.Post("/password", handler.ResetPassword)
	})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.userService.List()
	items := make([]types.User, 0, len(users))
	for _, user := range users {
		items = append(items, user.Redacted())
	}
	writeJSON(w, http.StatusOK, UserListResponse{Items: items, Total: len(items)})
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Create(r.Context(), store.UserInput{
		Username: strings.TrimSpace(req.Username),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user.Redacted())
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Update(r.Context(), id, store.UserUpdate{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Status:   req.Status,
		Password: req.Password,
	})
	if err != nil {
		writeUserError(w, err, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, user.Redacted())
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		writeUserError(w, err, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeUserError(w, err, "failed to update status")
		return
	}

	writeJSON(w, http.StatusOK, user.Redacted())
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.ResetPassword(r.Context(), id, req.Password); err != nil {
		writeUserError(w, err, "failed to reset password")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeUserError maps repository sentinels to HTTP statuses; the protected
// admin account surfaces an explicit refusal.
func writeUserError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, store.ErrProtectedUser):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin sales"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin sales"`
	Status   *string `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Password *string `json:"password"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active Inactive"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type UserListResponse struct {
	Items []types.User `json:"items"`
	Total int          `json:"total"`
}

func parseUserID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}
