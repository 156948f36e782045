package app

import (
	"net/http"
	"time"
	"zapzap/backend/internal/handler"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	router *mux.Router
}

func NewServer(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	groupHandler *handler.GroupHandler,
	chatHandler *handler.ChatHandler,
	wsHandler *handler.WSHandler,
	uploadDir string,
) *Server {
	router := mux.NewRouter()

	protected := router.NewRoute().Subrouter()
	protected.Use(handler.AuthMiddleware)

	authHandler.RegisterRoutes(router, protected)
	userHandler.RegisterRoutes(protected)
	groupHandler.RegisterRoutes(protected)
	chatHandler.RegisterRoutes(protected)
	wsHandler.RegisterRoutes(router)

	router.HandleFunc("/ping", handler.Ping).Methods("GET")

	// Uploaded attachments are public by path, like the original.
	if uploadDir != "" {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	}

	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return &Server{router: router}
}

// Handler is the full middleware chain, CORS included.
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With"}),
	)
	return cors(s.router)
}

func (s *Server) Run(port string) {
	srv := &http.Server{
		Handler:      s.Handler(),
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Infof("server starting on port %s", port)
	log.Fatal(srv.ListenAndServe())
}
