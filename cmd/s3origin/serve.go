package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bucketlabs/s3origin"
	originhttp "github.com/bucketlabs/s3origin/http"
	"github.com/bucketlabs/s3origin/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP origin server",
	Long:  `Start an HTTP server exposing the configured bucket prefix as a resource tree.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5917, "HTTP server port")
	serveCmd.Flags().String("mode", "flat", "index mode (flat, static, spa)")
	serveCmd.Flags().Int64("max-size", 0, "maximum object size in bytes, 0 for unbounded")

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("origin.mode", serveCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("origin.max_size", serveCmd.Flags().Lookup("max-size"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	storeCfg := store.Config{
		Type:         viper.GetString("store.type"),
		Region:       viper.GetString("store.region"),
		Endpoint:     viper.GetString("store.endpoint"),
		AccessKey:    viper.GetString("store.access_key"),
		SecretKey:    viper.GetString("store.secret_key"),
		UseSSL:       viper.GetBool("store.use_ssl"),
		UsePathStyle: viper.GetBool("store.use_path_style"),
	}

	st, err := store.Connect(ctx, storeCfg)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	slog.Info("connected to object store", "type", storeCfg.Type)

	mode, err := s3origin.ParseIndexMode(viper.GetString("origin.mode"))
	if err != nil {
		return fmt.Errorf("parse index mode: %w", err)
	}

	origin, err := s3origin.NewBuilder().
		Bucket(viper.GetString("origin.bucket")).
		Prefix(viper.GetString("origin.prefix")).
		MaxSize(viper.GetInt64("origin.max_size")).
		PruneSegments(viper.GetInt("origin.prune_segments")).
		Mode(mode).
		Store(st).
		Build()
	if err != nil {
		return fmt.Errorf("build origin: %w", err)
	}

	corsConfig := originhttp.CORSConfig{
		Enabled:          viper.GetBool("cors.enabled"),
		AllowedOrigins:   viper.GetStringSlice("cors.allowed_origins"),
		AllowedHeaders:   viper.GetStringSlice("cors.allowed_headers"),
		ExposedHeaders:   viper.GetStringSlice("cors.exposed_headers"),
		AllowCredentials: viper.GetBool("cors.allow_credentials"),
		MaxAge:           viper.GetInt("cors.max_age"),
	}

	handlerConfig := originhttp.HandlerConfig{
		CORS: corsConfig,
	}

	handler := originhttp.NewHandler(&handlerConfig, origin)

	port := viper.GetInt("server.port")
	addr := fmt.Sprintf(":%d", port)

	server := &http.Server{
		Addr:        addr,
		Handler:     handler.Router(),
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: large objects stream for as long as the
		// client keeps draining them.
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"bucket", origin.Bucket(),
		"prefix", origin.Prefix(),
		"mode", mode,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
