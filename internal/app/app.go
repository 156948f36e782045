package app

import (
	"zapzap/backend/internal/config"
	"zapzap/backend/internal/csvstore"
	"zapzap/backend/internal/handler"
	"zapzap/backend/internal/pkg/auth"
	"zapzap/backend/internal/presence"
	"zapzap/backend/internal/repository"
	"zapzap/backend/internal/service"
	"zapzap/backend/internal/ws"

	log "github.com/sirupsen/logrus"
)

func Run(cfg *config.Config) {
	auth.SetSigningKey(cfg.JWTKey)

	db, err := repository.NewDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	chatRepo := repository.NewChatRepository(db)

	if cfg.LegacyDataDir != "" {
		importer := csvstore.NewImporter(userRepo, groupRepo, chatRepo)
		if err := importer.Import(cfg.LegacyDataDir); err != nil {
			log.Fatalf("legacy import failed: %v", err)
		}
	}

	var cache repository.ConversationCache
	if cfg.RedisAddr != "" {
		rdb, err := repository.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal(err)
		}
		cache = repository.NewConversationCache(rdb)
		log.WithField("addr", cfg.RedisAddr).Info("conversation cache enabled")
	}

	var files service.FileStorage
	var presigner handler.FilePresigner
	switch cfg.FileStorage {
	case "s3":
		s3Storage, err := service.NewS3Storage(cfg)
		if err != nil {
			log.Fatal(err)
		}
		files = s3Storage
		presigner = s3Storage
	default:
		local, err := service.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			log.Fatal(err)
		}
		files = local
	}

	hub := ws.NewHub()
	online := presence.NewTracker()

	userService := service.NewUserService(userRepo)
	groupService := service.NewGroupService(groupRepo)
	chatService := service.NewChatService(chatRepo, userRepo, groupRepo, cache, hub)

	authHandler := handler.NewAuthHandler(userService, online)
	userHandler := handler.NewUserHandler(userService, online)
	groupHandler := handler.NewGroupHandler(groupService)
	chatHandler := handler.NewChatHandler(chatService, files, presigner)
	wsHandler := handler.NewWSHandler(hub)

	server := NewServer(authHandler, userHandler, groupHandler, chatHandler, wsHandler, cfg.UploadDir)
	server.Run(cfg.ServerPort)
}
