package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"shadowgram/internal/config"
	apihttp "shadowgram/internal/http"
	"shadowgram/internal/realtime"
	"shadowgram/internal/repository"
	"shadowgram/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		accountRepo repository.AccountRepository
		messageRepo repository.MessageRepository
	)
	switch cfg.StoreDriver {
	case "file":
		accountRepo = repository.NewFileAccountRepository(cfg.UsersFile)
		messageRepo = repository.NewFileMessageRepository(cfg.MessagesFile)
	default:
		db, err := repository.OpenBadger(cfg.DataDir)
		if err != nil {
			logger.Fatal("store open", zap.Error(err))
		}
		defer db.Close()

		badgerAccounts, err := repository.NewBadgerAccountRepository(db)
		if err != nil {
			logger.Fatal("account repository init", zap.Error(err))
		}
		defer badgerAccounts.Close()

		accountRepo = badgerAccounts
		messageRepo = repository.NewBadgerMessageRepository(db)
	}

	hub := realtime.NewHub(logger)
	accountSvc := service.NewAccountService(logger, accountRepo, cfg.BcryptCost)
	messageSvc := service.NewMessageService(logger, messageRepo, hub)

	accountHandler := apihttp.NewAccountHandler(logger, accountSvc)
	messageHandler := apihttp.NewMessageHandler(logger, messageSvc)
	wsHandler := apihttp.NewWSHandler(logger, hub)
	router := apihttp.NewRouter(logger, accountHandler, messageHandler, wsHandler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreDriver),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
