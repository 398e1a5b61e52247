package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cabzii/internal/auth"
	intconfig "cabzii/internal/config"
	router "cabzii/internal/http"
	"cabzii/internal/http/handlers"
	"cabzii/internal/http/validation"
	"cabzii/internal/otp"
	"cabzii/internal/repositories"
	"cabzii/internal/sms"
	"cabzii/internal/storage"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := repositories.EnsureIndexes(ctx, db); err != nil {
			cancel()
			log.Fatalf("failed to ensure indexes: %v", err)
		}
		cancel()
	}

	files, err := storage.NewFileStore(env.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}

	tokens := auth.NewManager(env.JWTSecret)
	otpStore := otp.NewMemoryStore()

	handlers.Configure(handlers.Deps{
		Tokens: tokens,
		OTP:    otpStore,
		SMS:    sms.NewFast2SMS(env.Fast2SMSAPIKey),
		Files:  files,
	})

	// Sweep expired codes so abandoned logins do not pile up.
	purgeDone := make(chan struct{})
	go func() {
		t := time.NewTicker(5 * time.Minute)
		defer t.Stop()
		for {
			select {
			case now := <-t.C:
				otpStore.Purge(now)
			case <-purgeDone:
				return
			}
		}
	}()
	defer close(purgeDone)

	validation.Register()

	r := router.NewRouter(env, tokens)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly.")
}
