// Command freecelld starts the RustLibreCell server: a REST API, WebSocket
// board broadcaster, and MCP stdio/HTTP tool surface over a session.Manager.
//
// It supports two modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server against the same in-process session.Manager
//
// Flags control host/port, data directory, debug logging, and optional
// ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/tristhaus/rslibrecell-go/internal/api"
	"github.com/tristhaus/rslibrecell-go/internal/journey"
	"github.com/tristhaus/rslibrecell-go/internal/journeyrepo"
	"github.com/tristhaus/rslibrecell-go/internal/mcpgame"
	"github.com/tristhaus/rslibrecell-go/internal/session"
	"github.com/tristhaus/rslibrecell-go/internal/wsboard"
)

const appName = "RustLibreCell server"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cmd := &cli.Command{
		Name:  "freecelld",
		Usage: "serve FreeCell sessions over REST, WebSocket, and MCP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host"},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port"},
			&cli.StringFlag{Name: "data-dir", Value: dataDirDefault(), Usage: "directory for journey and session persistence"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
			&cli.BoolFlag{Name: "ngrok", Usage: "expose the server through an ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token (or NGROK_AUTHTOKEN env var)"},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain"},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP server with REST API, WebSocket, and /mcp endpoint (default)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runServe(ctx, cmd)
				},
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp"},
				Usage:   "run an MCP stdio server against an in-process session manager",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runStdioMCP(ctx, cmd)
				},
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx, cmd)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("freecelld exited with error", "error", err)
		os.Exit(1)
	}
}

func dataDirDefault() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func newManager(dataDir string) (*session.Manager, error) {
	persistence, err := session.NewFilePersistence(filepath.Join(dataDir, "sessions"))
	if err != nil {
		return nil, fmt.Errorf("create session persistence: %w", err)
	}

	repoFactory := func(sessionID string) journey.Repository {
		return journeyrepo.NewDisk(filepath.Join(dataDir, "journeys", sessionID))
	}

	return session.NewManager(repoFactory, persistence), nil
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an
// MCP HTTP endpoint, grounded in the teacher's main.runHTTPServer.
func runServe(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))

	manager, err := newManager(cmd.String("data-dir"))
	if err != nil {
		return err
	}

	hub := wsboard.NewHub()
	go hub.Run()

	apiServer := api.NewServer(manager, hub)
	mcpServer := mcpgame.NewServer(manager)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.MCPServer().HandleMessage(r.Context(), body)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		}
	})

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("http server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server failed", "error", err)
		}
	}()

	if ngrokEnabled(cmd) {
		wg.Add(1)
		go runNgrok(shutdownCtx, cmd, mainRouter, &wg)
	}

	sig := <-stop
	slog.Info("received signal, shutting down", "signal", sig.String())
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := httpServer.Shutdown(stopCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	wg.Wait()
	slog.Info("server stopped")
	return nil
}

func ngrokEnabled(cmd *cli.Command) bool {
	if cmd.Bool("ngrok") {
		return true
	}
	enabled := os.Getenv("NGROK_ENABLED")
	return enabled == "true" || enabled == "1"
}

func runNgrok(ctx context.Context, cmd *cli.Command, handler http.Handler, wg *sync.WaitGroup) {
	defer wg.Done()

	authToken := cmd.String("ngrok-auth")
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
	}
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTH_TOKEN")
	}
	if authToken == "" {
		slog.Warn("ngrok enabled but no auth token provided")
		return
	}

	domain := cmd.String("ngrok-domain")
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		slog.Error("failed to start ngrok tunnel", "error", err)
		return
	}
	defer tun.Close()

	slog.Info("ngrok tunnel established", "url", tun.URL())

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		slog.Error("ngrok server error", "error", err)
	}
}

// runStdioMCP runs an MCP stdio server against an in-process session manager.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))

	manager, err := newManager(cmd.String("data-dir"))
	if err != nil {
		return err
	}

	mcpServer := mcpgame.NewServer(manager)
	slog.Info("starting MCP stdio server")
	return server.ServeStdio(mcpServer.MCPServer())
}
