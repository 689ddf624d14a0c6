package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dramastream/config"
	"dramastream/internal/database"
	"dramastream/internal/router"
	"dramastream/pkg/receipt"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	database.Seed(db)

	googleVerifier, err := receipt.NewGoogleVerifier(cfg.Billing.AndroidPackageName, cfg.Billing.GooglePlayCredentials, cfg.Billing.VerifyTimeout)
	if err != nil {
		log.Fatalf("receipt: %v", err)
	}
	appleVerifier := receipt.NewAppleVerifier(cfg.Billing.AppleBundleID, cfg.Billing.AppleSharedSecret, cfg.Server.Env == "production", cfg.Billing.VerifyTimeout)
	receipts := receipt.NewService(googleVerifier, appleVerifier)

	engine := router.Setup(cfg, db, receipts)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	fmt.Println("server stopped")
}
