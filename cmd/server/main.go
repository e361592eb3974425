package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/snapledger/snapledger/internal/auth"
	"github.com/snapledger/snapledger/internal/config"
	"github.com/snapledger/snapledger/internal/recognizer"
	"github.com/snapledger/snapledger/internal/server"
	"github.com/snapledger/snapledger/internal/service"
	"github.com/snapledger/snapledger/internal/storage/sqlite"
	"github.com/snapledger/snapledger/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	recognitionClient := recognizer.NewClient(cfg.RecognizerURL, cfg.RecognizerTimeout)
	slog.Info("Recognition client configured",
		"endpoint", cfg.RecognizerURL, "timeout", cfg.RecognizerTimeout)

	receiptService := service.NewReceiptService(store, recognitionClient)
	itemService := service.NewExpenseItemService(store)
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	srv := server.New(receiptService, itemService, authenticator, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
