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

	"equate-backend/internal/chat"
	"equate-backend/internal/config"
	"equate-backend/internal/router"
	"equate-backend/internal/services"
	"equate-backend/internal/session"
	"equate-backend/internal/tools"
	"equate-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting EquateGPT Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Build Tool Registry ────
	registry := tools.NewRegistry(tools.NewEvaluatorTool())
	log.Printf("✓ Tool registry ready (%d tools)", len(registry.List()))

	// ──── Step 3: Initialize Gemini Client ────
	ctx := context.Background()
	geminiService, err := services.NewGeminiService(
		ctx,
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		cfg.GeminiTemperature,
		cfg.GeminiConcurrentReqs,
		cfg.GeminiMaxRetries,
		registry,
	)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)

	// ──── Step 4: Build Orchestrator and Session Manager ────
	orchestrator := chat.NewOrchestrator(geminiService, registry, cfg.MaxToolRounds)
	sessions := session.NewManager()
	log.Println("✓ Session manager ready")

	// ──── Step 5: Start WebSocket Hub ────
	turnTimeout := time.Duration(cfg.TurnTimeoutSeconds) * time.Second
	wsHub := websocket.NewHub(sessions, orchestrator, turnTimeout)
	log.Println("✓ WebSocket hub started")

	// ──── Step 6: Start HTTP Server ────
	r := router.New(wsHub, cfg.StaticDir, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ EquateGPT Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  WS: ws://localhost:%s/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
