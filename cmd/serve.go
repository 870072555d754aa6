package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"resolver/internal/api"
	"resolver/internal/api/handler/v1handler"
	"resolver/internal/config"
	"resolver/pkg/logger"
	"resolver/pkg/mediaresolver/tikwm"
	"resolver/pkg/mediaresolver/ytdlp"
	"resolver/pkg/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, store storage.MetadataStore) func(ctx context.Context) {
	_, urlSet := os.LookupEnv("DATABASE_URL")
	_, nameSet := os.LookupEnv("DATABASE_NAME")

	deps := api.Deps{
		Deps: v1handler.Deps{
			TikTok:          tikwm.New(&http.Client{}),
			Media:           ytdlp.New(cfg.Ytdlp.Binary, nil),
			Store:           store,
			DatabaseURLSet:  urlSet,
			DatabaseNameSet: nameSet,
		},
	}

	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the resolver API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			store, closeStore := getStore(ctx, cfg)
			defer closeStore()

			stopWebserver := setupServer(ctx, cfg, store)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
