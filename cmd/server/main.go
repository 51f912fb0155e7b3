package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/polite-betrayal/hexmatch/internal/auth"
	"github.com/polite-betrayal/hexmatch/internal/broadcast"
	"github.com/polite-betrayal/hexmatch/internal/config"
	"github.com/polite-betrayal/hexmatch/internal/handler"
	"github.com/polite-betrayal/hexmatch/internal/logger"
	"github.com/polite-betrayal/hexmatch/internal/middleware"
	"github.com/polite-betrayal/hexmatch/internal/scheduler"
	"github.com/polite-betrayal/hexmatch/pkg/hexgame"
)

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().Str("redisURL", cfg.RedisURL).Int("mapRadius", cfg.MapRadius).Msg("Config loaded")

	// Redis sink for the tick-event fan-out (optional: a deployment
	// with no broadcast medium still runs the authoritative engine).
	var sink scheduler.SnapshotSink
	redisSink, err := broadcast.NewRedisSink(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without event fan-out")
	} else {
		defer redisSink.Close()
		sink = redisSink
	}

	// Auth
	resolver := auth.NewResolver(cfg.JWTSecret)

	// WebSocket hub doubles as a second SnapshotSink so a connected
	// client sees the same event stream Redis subscribers get.
	wsHub := handler.NewHub()

	sched := scheduler.New(cfg.TickInterval, cfg.MapRadius)
	sched.SetSnapshotSink(multiSink{sink, wsHub})

	matchHandler := handler.NewMatchHandler(sched, resolver)
	wsHandler := handler.NewWSHandler(wsHub, resolver)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("POST /matches/{id}", matchHandler.InitMatch)
	mux.HandleFunc("POST /matches/{id}/start", matchHandler.StartMatch)
	mux.HandleFunc("POST /matches/{id}/orders", matchHandler.SubmitOrders)
	mux.HandleFunc("GET /matches/{id}", matchHandler.GetState)
	mux.HandleFunc("GET /matches/{id}/config", matchHandler.GetConfig)
	mux.HandleFunc("GET /matches/{id}/ws", wsHandler.ServeWS)

	root := middleware.Chain(mux, middleware.Logger, middleware.CORS("*"), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}

// multiSink fans a tick's events out to every configured sink,
// tolerating a nil entry so a missing Redis connection doesn't
// disable the WebSocket push.
type multiSink []scheduler.SnapshotSink

func (m multiSink) Publish(ctx context.Context, matchID string, state *hexgame.MatchState) {
	for _, s := range m {
		if s != nil {
			s.Publish(ctx, matchID, state)
		}
	}
}
