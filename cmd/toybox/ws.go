package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-toybox/internal/transport/session"
	"github.com/vovakirdan/tui-toybox/internal/transport/websocket"
)

var flagWSAddr string

var wsCmd = &cobra.Command{
	Use:   "ws [game]",
	Short: "Serve games over WebSocket",
	Long: `Start an HTTP server with a WebSocket endpoint at /ws. Clients
create, step, query and save sessions with JSON requests; every client
watching a session receives its state updates.

Examples:
  toybox ws
  toybox ws --addr :9000 --difficulty hard

Connect with:
  websocat ws://localhost:8080/ws`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWS,
}

func init() {
	wsCmd.Flags().StringVar(&flagWSAddr, "addr", ":8080", "HTTP listen address")
}

func runWS(_ *cobra.Command, args []string) {
	logger := newLogger("ws")
	sim := createSim(gameArg(args))

	store, err := openStoreOptional()
	if err != nil {
		logger.Warn("continuing without database", "error", err)
	}
	if store != nil {
		defer store.Close()
	}

	hub := websocket.NewHub(session.NewManager(sim), store, logger)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n")) //nolint:errcheck // health probe body
	})

	server := &http.Server{
		Addr:              flagWSAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting WebSocket server", "address", flagWSAddr, "game", sim.ID())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			done <- syscall.SIGTERM
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
