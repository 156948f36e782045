package handler

import (
	"encoding/json"
	"net/http"
	"zapzap/backend/internal/pkg/httputils"
	"zapzap/backend/internal/pkg/validate"
	"zapzap/backend/internal/service"

	"github.com/gorilla/mux"
)

type GroupHandler struct {
	groups service.GroupService
}

func NewGroupHandler(groups service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

func (h *GroupHandler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/group/my", h.myGroups).Methods("GET", "OPTIONS")
	protected.HandleFunc("/group", h.allGroups).Methods("GET", "OPTIONS")
	protected.HandleFunc("/group/create", h.create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/group/{id}/join", h.join).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/group/{id}/approve/{userId}", h.approve).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/group/{id}/reject/{userId}", h.reject).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/group/{id}/ban/{userId}", h.ban).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/group/{id}/leave", h.leave).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/group/{id}", h.delete).Methods("DELETE", "OPTIONS")
}

type CreateGroupRequest struct {
	Name          string   `json:"name" validate:"required"`
	AdminsID      []string `json:"adminsId"`
	Members       []string `json:"members"`
	LastAdminRule string   `json:"lastAdminRule" validate:"omitempty,oneof=promote delete"`
}

// @Summary Create group
// @Description Create a group; the creator is always added to admins and members
// @Tags group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param group body CreateGroupRequest true "Group definition"
// @Success 201 {object} model.Group
// @Failure 400 {object} response.ErrorResponse
// @Router /group/create [post]
func (h *GroupHandler) create(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)

	var request CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}
	r.Body.Close()

	if err := validate.Struct(request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.groups.Create(claims.UserID(), request.Name, request.AdminsID, request.Members, request.LastAdminRule)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, group)
}

// @Summary My groups
// @Description Groups the current user is a member of
// @Tags group
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Group
// @Router /group/my [get]
func (h *GroupHandler) myGroups(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)

	groups, err := h.groups.ListMine(claims.UserID())
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, groups)
}

// @Summary All groups
// @Tags group
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Group
// @Router /group [get]
func (h *GroupHandler) allGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListAll()
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, groups)
}

// @Summary Request to join
// @Description Add the current user to the group's pending requests
// @Tags group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Produce json
// @Success 200 {object} model.Group
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /group/{id}/join [patch]
func (h *GroupHandler) join(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)
	groupID := mux.Vars(r)["id"]

	group, err := h.groups.Join(groupID, claims.UserID())
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, group)
}

// @Summary Approve member
// @Description Move a pending user into the member set (admins only)
// @Tags group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param userId path string true "User ID"
// @Produce json
// @Success 200 {object} model.Group
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /group/{id}/approve/{userId} [patch]
func (h *GroupHandler) approve(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)
	vars := mux.Vars(r)

	group, err := h.groups.Approve(vars["id"], claims.UserID(), vars["userId"])
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, group)
}

// @Summary Reject member
// @Description Drop a pending request (admins only)
// @Tags group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param userId path string true "User ID"
// @Produce json
// @Success 200 {object} model.Group
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /group/{id}/reject/{userId} [patch]
func (h *GroupHandler) reject(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)
	vars := mux.Vars(r)

	group, err := h.groups.Reject(vars["id"], claims.UserID(), vars["userId"])
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, group)
}

// @Summary Ban member
// @Description Remove a member from members and admins (admins only, no self-ban)
// @Tags group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param userId path string true "User ID"
// @Produce json
// @Success 200 {object} model.Group
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /group/{id}/ban/{userId} [patch]
func (h *GroupHandler) ban(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)
	vars := mux.Vars(r)

	group, err := h.groups.Ban(vars["id"], claims.UserID(), vars["userId"])
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, group)
}

// @Summary Leave group
// @Description Leave; the last admin's departure applies the group's lastAdminRule
// @Tags group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /group/{id}/leave [delete]
func (h *GroupHandler) leave(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)
	groupID := mux.Vars(r)["id"]

	if err := h.groups.Leave(groupID, claims.UserID()); err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete group
// @Description Delete the group entirely (admins only)
// @Tags group
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /group/{id} [delete]
func (h *GroupHandler) delete(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)
	groupID := mux.Vars(r)["id"]

	if err := h.groups.Delete(groupID, claims.UserID()); err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
