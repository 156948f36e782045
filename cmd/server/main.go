// @title ZAP ZAP 2
// @version 2.9.9
// @description Chat backend: users, groups with join approval, private/group messaging.

// @host localhost:8080
// @BasePath /
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	log "github.com/sirupsen/logrus"

	_ "zapzap/backend/docs"
	"zapzap/backend/internal/app"
	"zapzap/backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app.Run(cfg)
}
