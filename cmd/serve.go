package main

import (
	"context"
	"fmt"
	"nutrilog-backend/cmd/config"
	"nutrilog-backend/internal/utils"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	utils.LoadConfig()

	log, err := config.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := config.ConnectDB()
	if err != nil {
		return err
	}

	app, err := config.NewApp(ctx, db, log)
	if err != nil {
		return err
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting http server", zap.String("port", port))
		errCh <- app.Fiber.Listen(":" + port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	return app.Shutdown(shutdownCtx)
}
