package handler

import (
	"net/http"
	"zapzap/backend/internal/pkg/httputils"
	"zapzap/backend/internal/presence"
	"zapzap/backend/internal/service"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	users  service.UserService
	online *presence.Tracker
}

func NewUserHandler(users service.UserService, online *presence.Tracker) *UserHandler {
	return &UserHandler{users: users, online: online}
}

func (h *UserHandler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/users", h.listUsers).Methods("GET", "OPTIONS")
	protected.HandleFunc("/users/ban/{userId}", h.banUser).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/users/unban/{userId}", h.unbanUser).Methods("PATCH", "OPTIONS")
}

type UserListEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	IsCurrentUser bool   `json:"isCurrentUser"`
	IsOnline      bool   `json:"isOnline"`
	Banned        bool   `json:"banned"`
}

// @Summary List users
// @Description All registered users with presence and ban flags
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} UserListEntry
// @Router /users [get]
func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)

	users, err := h.users.ListUsers()
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	entries := make([]UserListEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, UserListEntry{
			ID:            user.ID,
			Name:          user.Name,
			IsCurrentUser: user.ID == claims.UserID(),
			IsOnline:      h.online.IsOnline(user.ID),
			Banned:        user.Banned,
		})
	}

	httputils.ResponseJSON(w, http.StatusOK, entries)
}

// @Summary Ban user
// @Description Flag a user as banned; self-targeting is forbidden
// @Tags users
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/ban/{userId} [patch]
func (h *UserHandler) banUser(w http.ResponseWriter, r *http.Request) {
	h.setBanned(w, r, true)
}

// @Summary Unban user
// @Description Clear a user's banned flag; self-targeting is forbidden
// @Tags users
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/unban/{userId} [patch]
func (h *UserHandler) unbanUser(w http.ResponseWriter, r *http.Request) {
	h.setBanned(w, r, false)
}

func (h *UserHandler) setBanned(w http.ResponseWriter, r *http.Request, banned bool) {
	claims := CurrentClaims(r)
	targetID := mux.Vars(r)["userId"]

	if err := h.users.SetBanned(claims.UserID(), targetID, banned); err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
