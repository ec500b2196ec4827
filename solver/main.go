package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sokoban-solver",
	Short: "Solves Sokoban levels with an A* push search",
}

var solveCmd = &cobra.Command{
	Use:   "solve <level-file>",
	Short: "Solve every level in a file and print the results",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP/WebSocket solving surface",
	RunE:  runServe,
}

func init() {
	solveCmd.Flags().Bool("hungarian", false, "use the Hungarian assignment heuristic instead of the simple sum")
	solveCmd.Flags().Int("max-search", 0, "override MAX_SEARCH (0 keeps the configured default)")
	serveCmd.Flags().String("addr", "", "override the HTTP listen address")
	rootCmd.AddCommand(solveCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runSolve implements the distilled spec's §6 CLI output contract: every
// level in the file is solved synchronously, each prints its push list or
// a skipped indicator, and a solved/skipped summary closes the run. Exit
// codes follow §7: nonzero on malformed input or verification failure,
// zero otherwise (including a run with skipped levels).
func runSolve(cmd *cobra.Command, args []string) error {
	hungarian, _ := cmd.Flags().GetBool("hungarian")
	maxSearch, _ := cmd.Flags().GetInt("max-search")

	cfg := GetConfig()
	cfg.UseHungarian = hungarian
	if maxSearch > 0 {
		cfg.MaxSearch = maxSearch
	}
	configStore.Update(cfg)

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open level file: %w", err)
	}
	defer file.Close()

	levels, err := ParseLevels(file)
	if err != nil {
		return fmt.Errorf("parse levels: %w", err)
	}

	solved, skipped := 0, 0
	var skippedNames []string

	for _, lvl := range levels {
		result := Solve(lvl, cfg)
		switch result.Outcome {
		case OutcomeSolved:
			if err := Verify(lvl, result.Moves, cfg); err != nil {
				return fmt.Errorf("level %q: %w", lvl.Name, err)
			}
			solved++
			fmt.Printf("%s: solved in %d pushes (%d states)\n", lvl.Name, len(result.Moves), result.StatesExpanded)
			for i, push := range result.Moves {
				fmt.Printf("  %3d: crate %d %s\n", i, push.CrateIndex, push.Direction)
			}
		default:
			skipped++
			skippedNames = append(skippedNames, lvl.Name)
			fmt.Printf("%s: skipped (%s, %d states)\n", lvl.Name, result.Outcome, result.StatesExpanded)
		}
	}

	fmt.Printf("\n%d solved, %d skipped\n", solved, skipped)
	if len(skippedNames) > 0 {
		fmt.Printf("skipped levels: %v\n", skippedNames)
	}
	return nil
}

// runServe starts the chi/websocket HTTP surface described in SPEC_FULL
// §4.11, directly adapted from the teacher's main() (backend/main.go):
// result-cache load-on-start, a Hub broadcast loop, graceful shutdown on
// SIGINT/SIGTERM with cache persistence, and a chi router.
func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTPAddr = addr
		configStore.Update(cfg)
	}

	logrus.SetLevel(logLevelFromString(cfg.LogLevel))
	log := logrus.WithField("component", "serve")

	cache := SharedResultCache()
	if cfg.EnableResultCache {
		LoadResultCache(cache, cfg.ResultCachePath)
	}
	persistNow := func() {}
	if cfg.EnableResultCache {
		persistNow = InstallSignalPersistence(cache, cfg.ResultCachePath)
	}
	defer persistNow()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	controller := NewRunController(cache, cfg.BatchWorkers, func(event RunEvent) {
		hub.Publish(event)
	})

	r := newRouter(cfg, controller, cache, hub)

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Infof("listening on %s", cfg.HTTPAddr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Info("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.WithError(err).Error("server error")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Warn("graceful shutdown failed, forcing close")
		_ = server.Close()
	}

	cancel()
	return runErr
}

// newRouter builds the chi router runServe mounts, pulled out on its own so
// an HTTP-surface test can exercise it with httptest.NewServer without
// standing up a real listener or the signal-driven shutdown path.
func newRouter(cfg Config, controller *RunController, cache *Store, hub *Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Post("/api/runs", func(w http.ResponseWriter, r *http.Request) {
		handleStartRun(w, r, controller)
	})

	r.Get("/api/runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		report, ok := controller.Get(id)
		if !ok {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, report.Snapshot())
	})

	r.Get("/api/runs/{id}/levels/{name}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		name := chi.URLParam(r, "name")
		report, ok := controller.Get(id)
		if !ok {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		level, ok := report.Level(name)
		if !ok {
			http.Error(w, "level not found in run", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, level)
	})

	r.Get("/api/cache", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cache.All())
	})

	r.Delete("/api/cache", func(w http.ResponseWriter, r *http.Request) {
		cache.Clear()
		writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
	})

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/ws/runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		serveRunWS(hub, w, r)
	})

	return r
}

// startRunRequest is the POST /api/runs body. UseHungarian is a pointer
// so an omitted field falls back to the server's configured default
// instead of silently forcing the simple heuristic; a caller that wants
// to compare heuristics (sokobench) submits one run with it explicitly
// true and one explicitly false.
type startRunRequest struct {
	LevelFile    string `json:"level_file"`
	LevelText    string `json:"level_text"`
	UseHungarian *bool  `json:"use_hungarian,omitempty"`
}

func handleStartRun(w http.ResponseWriter, r *http.Request, controller *RunController) {
	var req startRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var reader io.Reader
	switch {
	case req.LevelText != "":
		reader = strings.NewReader(req.LevelText)
	case req.LevelFile != "":
		file, err := os.Open(req.LevelFile)
		if err != nil {
			http.Error(w, fmt.Sprintf("open level file: %v", err), http.StatusBadRequest)
			return
		}
		defer file.Close()
		reader = file
	default:
		http.Error(w, "level_file or level_text is required", http.StatusBadRequest)
		return
	}

	levels, err := ParseLevels(reader)
	if err != nil {
		http.Error(w, fmt.Sprintf("parse levels: %v", err), http.StatusBadRequest)
		return
	}
	if len(levels) == 0 {
		http.Error(w, "no levels found", http.StatusBadRequest)
		return
	}

	cfg := GetConfig()
	if req.UseHungarian != nil {
		cfg.UseHungarian = *req.UseHungarian
	}

	id := uuid.NewString()
	report := controller.StartRun(context.Background(), id, levels, cfg)
	writeJSON(w, http.StatusAccepted, report.Snapshot())
}

func serveRunWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client.send)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func logLevelFromString(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
