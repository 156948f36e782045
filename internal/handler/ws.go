package handler

import (
	"net/http"
	"zapzap/backend/internal/pkg/auth"
	"zapzap/backend/internal/pkg/httputils"
	"zapzap/backend/internal/ws"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

func (h *WSHandler) RegisterRoutes(public *mux.Router) {
	public.HandleFunc("/ws", h.serve).Methods("GET")
}

// serve upgrades the connection and parks it in the hub. Browsers cannot
// set headers on websocket requests, so the token rides in the query.
func (h *WSHandler) serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	claims, err := auth.ValidateToken(token)
	if err != nil {
		httputils.ResponseError(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	conn, err := ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	go ws.NewClient(h.hub, conn, claims.UserID()).Run()
}
