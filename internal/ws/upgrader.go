package ws

import (
	"net/http"
	"os"

	"github.com/gorilla/websocket"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browsers enforce the origin check; the API itself is already
		// CORS-open. Lock down via ALLOWED_ORIGIN when fronted directly.
		allowed := os.Getenv("ALLOWED_ORIGIN")
		if allowed == "" {
			return true
		}
		return r.Header.Get("Origin") == allowed
	},
}
