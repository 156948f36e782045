package handler

import (
	"encoding/json"
	"net/http"
	"zapzap/backend/internal/pkg/auth"
	"zapzap/backend/internal/pkg/httputils"
	"zapzap/backend/internal/pkg/validate"
	"zapzap/backend/internal/presence"
	"zapzap/backend/internal/service"

	"github.com/gorilla/mux"
)

type AuthHandler struct {
	users  service.UserService
	online *presence.Tracker
}

func NewAuthHandler(users service.UserService, online *presence.Tracker) *AuthHandler {
	return &AuthHandler{users: users, online: online}
}

func (h *AuthHandler) RegisterRoutes(public, protected *mux.Router) {
	public.HandleFunc("/auth/register", h.register).Methods("POST", "OPTIONS")
	public.HandleFunc("/auth/login", h.login).Methods("POST", "OPTIONS")
	protected.HandleFunc("/auth/logout", h.logout).Methods("POST", "OPTIONS")
	protected.HandleFunc("/auth/profile", h.profile).Methods("GET", "OPTIONS")
}

type CredentialsRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// @Summary Register
// @Description Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Name and password"
// @Success 200 {string} string
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var request CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}
	r.Body.Close()

	if err := validate.Struct(request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Register(request.Name, request.Password)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, user.Name)
}

// @Summary Login
// @Description Exchange credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Name and password"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var request CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}
	r.Body.Close()

	if err := validate.Struct(request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Authenticate(request.Name, request.Password)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Name)
	if err != nil {
		httputils.ResponseError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	h.online.Add(user.ID)

	httputils.ResponseJSON(w, http.StatusOK, TokenResponse{AccessToken: token})
}

// @Summary Logout
// @Description Mark the current user offline
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)
	h.online.Remove(claims.UserID())
	w.WriteHeader(http.StatusNoContent)
}

type ProfileResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// @Summary Profile
// @Description Identity encoded in the presented token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ProfileResponse
// @Router /auth/profile [get]
func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)
	httputils.ResponseJSON(w, http.StatusOK, ProfileResponse{
		ID:   claims.UserID(),
		Name: claims.Name,
	})
}
