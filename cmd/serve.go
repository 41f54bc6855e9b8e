package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/edumentor/internal/api"
	"github.com/abhisek/edumentor/internal/feedback"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the exam catalog and evaluation API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		origins, _ := cmd.Flags().GetStringSlice("cors-origin")
		cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")
		offline, _ := cmd.Flags().GetBool("offline")

		if redisAddr == "" {
			redisAddr = os.Getenv("EDUMENTOR_REDIS_ADDR")
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var cache feedback.Cache
		if redisAddr != "" {
			rc := feedback.NewRedisCache(redisAddr, cacheTTL)
			defer func() { _ = rc.Close() }()

			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := rc.Ping(pingCtx)
			cancel()
			if err != nil {
				return fmt.Errorf("connect to redis at %s: %w", redisAddr, err)
			}
			cache = rc
			logger.Info("feedback cache", "backend", "redis", "addr", redisAddr)
		} else {
			cache = feedback.NewMemoryCache(cacheTTL)
			logger.Info("feedback cache", "backend", "memory")
		}

		svc, err := buildServices(cmd, serviceOptions{offline: offline, withStore: true, cache: cache})
		if err != nil {
			return err
		}
		defer svc.Close()

		srv := api.NewServer(api.Options{
			Addr:        addr,
			CORSOrigins: origins,
			Service:     svc.exams,
			Events:      svc.eventRepo(),
			Logger:      logger,
		})
		logger.Info("services ready", "model", svc.status(), "exams", svc.catalog.Len())
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", api.DefaultAddr, "Listen address")
	serveCmd.Flags().String("redis-addr", "", "Redis address for the feedback cache (overrides EDUMENTOR_REDIS_ADDR)")
	serveCmd.Flags().StringSlice("cors-origin", []string{api.DefaultCORSOrigin}, "Allowed CORS origin (repeatable)")
	serveCmd.Flags().Duration("cache-ttl", feedback.DefaultTTL, "How long cached feedback is reused")
	serveCmd.Flags().Bool("offline", false, "Skip the LLM and always return the offline feedback message")
}
