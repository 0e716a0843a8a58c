package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/gesturebeats/internal/app"
	"github.com/ayusman/gesturebeats/internal/server"
	"github.com/ayusman/gesturebeats/internal/store"
)

func main() {
	fmt.Println("GestureBeats - Gesture-Driven Music Performance")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".gesturebeats")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "gesturebeats.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Start the performance pipeline
	a := app.New(app.Config{
		Store:     st,
		OutputDir: filepath.Join(dataDir, "sessions"),
	})
	a.Start()
	defer a.Stop()

	// Configure and start server
	cfg := server.Config{
		Store: st,
		App:   a,
	}

	srv := server.New(cfg)

	addr := ":8080"
	fmt.Printf("Starting server on %s\n", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-sigCh:
		fmt.Printf("Received %s, shutting down\n", sig)
	}
}
