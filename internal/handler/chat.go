package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
	"zapzap/backend/internal/model"
	"zapzap/backend/internal/pkg/httputils"
	"zapzap/backend/internal/pkg/validate"
	"zapzap/backend/internal/service"

	"github.com/gorilla/mux"
)

const maxUploadSize = 32 << 20 // 32MB

// FilePresigner is implemented by storage backends that need a separate
// download URL (S3). Local storage serves files statically instead.
type FilePresigner interface {
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

type ChatHandler struct {
	chats     service.ChatService
	files     service.FileStorage
	presigner FilePresigner // nil for local storage
}

func NewChatHandler(chats service.ChatService, files service.FileStorage, presigner FilePresigner) *ChatHandler {
	return &ChatHandler{chats: chats, files: files, presigner: presigner}
}

func (h *ChatHandler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/chat/private", h.privatePeers).Methods("GET", "OPTIONS")
	protected.HandleFunc("/chat/private/{userId}", h.getPrivate).Methods("GET", "OPTIONS")
	protected.HandleFunc("/chat/private/{userId}", h.sendPrivate).Methods("POST", "OPTIONS")
	protected.HandleFunc("/chat/private/{userId}/file", h.sendPrivateFile).Methods("POST", "OPTIONS")
	protected.HandleFunc("/chat/group/{groupId}", h.getGroup).Methods("GET", "OPTIONS")
	protected.HandleFunc("/chat/group/{groupId}", h.sendGroup).Methods("POST", "OPTIONS")
	protected.HandleFunc("/chat/group/{groupId}/file", h.sendGroupFile).Methods("POST", "OPTIONS")
	if h.presigner != nil {
		protected.HandleFunc("/chat/fileurl", h.fileURL).Methods("GET", "OPTIONS")
	}
}

type MessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// @Summary Private history
// @Description All private messages between the current user and a peer, either direction
// @Tags chat
// @Security BearerAuth
// @Param userId path string true "Peer user ID"
// @Produce json
// @Success 200 {array} model.Message
// @Router /chat/private/{userId} [get]
func (h *ChatHandler) getPrivate(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)
	peerID := mux.Vars(r)["userId"]

	messages, err := h.chats.PrivateHistory(r.Context(), claims.UserID(), peerID)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, messages)
}

// @Summary Private peers
// @Description Distinct users the current user has private history with, first-contact order
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.User
// @Router /chat/private [get]
func (h *ChatHandler) privatePeers(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)

	peers, err := h.chats.PrivatePeers(claims.UserID())
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, peers)
}

// @Summary Group history
// @Tags chat
// @Security BearerAuth
// @Param groupId path string true "Group ID"
// @Produce json
// @Success 200 {array} model.Message
// @Router /chat/group/{groupId} [get]
func (h *ChatHandler) getGroup(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupId"]

	messages, err := h.chats.GroupHistory(r.Context(), groupID)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, messages)
}

// @Summary Send private message
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userId path string true "Peer user ID"
// @Param message body MessageRequest true "Message"
// @Success 201 {object} model.Message
// @Failure 400 {object} response.ErrorResponse
// @Router /chat/private/{userId} [post]
func (h *ChatHandler) sendPrivate(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, model.ChatTypePrivate, mux.Vars(r)["userId"])
}

// @Summary Send group message
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param groupId path string true "Group ID"
// @Param message body MessageRequest true "Message"
// @Success 201 {object} model.Message
// @Failure 400 {object} response.ErrorResponse
// @Router /chat/group/{groupId} [post]
func (h *ChatHandler) sendGroup(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, model.ChatTypeGroup, mux.Vars(r)["groupId"])
}

func (h *ChatHandler) send(w http.ResponseWriter, r *http.Request, chatType, targetID string) {
	claims := CurrentClaims(r)

	var request MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid request format")
		return
	}
	r.Body.Close()

	if err := validate.Struct(request); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.chats.Send(r.Context(), claims.UserID(), targetID, chatType, request.Message, false)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, msg)
}

// @Summary Send private file
// @Description Store the uploaded file and record a message with isFile=true and content = stored path
// @Tags chat
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param userId path string true "Peer user ID"
// @Param file formData file true "File"
// @Success 201 {object} model.Message
// @Failure 400 {object} response.ErrorResponse
// @Router /chat/private/{userId}/file [post]
func (h *ChatHandler) sendPrivateFile(w http.ResponseWriter, r *http.Request) {
	h.sendFile(w, r, model.ChatTypePrivate, mux.Vars(r)["userId"])
}

// @Summary Send group file
// @Description Store the uploaded file and record a message with isFile=true and content = stored path
// @Tags chat
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param groupId path string true "Group ID"
// @Param file formData file true "File"
// @Success 201 {object} model.Message
// @Failure 400 {object} response.ErrorResponse
// @Router /chat/group/{groupId}/file [post]
func (h *ChatHandler) sendGroupFile(w http.ResponseWriter, r *http.Request) {
	h.sendFile(w, r, model.ChatTypeGroup, mux.Vars(r)["groupId"])
}

func (h *ChatHandler) sendFile(w http.ResponseWriter, r *http.Request, chatType, targetID string) {
	claims := CurrentClaims(r)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputils.ResponseError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	meta, err := h.files.Save(r.Context(), file, header.Filename,
		header.Header.Get("Content-Type"), header.Size, claims.UserID(), targetID)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	msg, err := h.chats.Send(r.Context(), claims.UserID(), targetID, chatType, meta.StoredPath, true)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusCreated, msg)
}

// @Summary File download URL
// @Description Temporary download link for an object-store attachment
// @Tags chat
// @Security BearerAuth
// @Param key query string true "Object key (the message content of a file message)"
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorResponse
// @Router /chat/fileurl [get]
func (h *ChatHandler) fileURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		httputils.ResponseError(w, http.StatusBadRequest, "key is required")
		return
	}

	url, err := h.presigner.PresignedURL(r.Context(), key, 15*time.Minute)
	if err != nil {
		httputils.ResponseAppError(w, err)
		return
	}

	httputils.ResponseJSON(w, http.StatusOK, map[string]string{"url": url})
}
