package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/product-admin/internal/config"
	"github.com/tuanvumaihuynh/product-admin/internal/http"
	"github.com/tuanvumaihuynh/product-admin/internal/log"
	"github.com/tuanvumaihuynh/product-admin/internal/repository"
	"github.com/tuanvumaihuynh/product-admin/internal/service"
	"github.com/tuanvumaihuynh/product-admin/internal/shopify"
	"github.com/tuanvumaihuynh/product-admin/internal/telemetry"
	"github.com/tuanvumaihuynh/product-admin/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running web application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log     config.Log
		HTTP    config.HTTP
		Shopify config.Shopify
		Otel    config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	shopifyClient := shopify.NewHTTPClient(cfg.Shopify)
	productRepository := repository.NewProductRepository(shopifyClient)

	// No journal without a database.
	productService := service.NewProductService(logger, productRepository, nil)

	svc, err := http.New(cfg.HTTP, logger, productService, shopify.Session{
		Shop:        cfg.Shopify.ShopDomain,
		AccessToken: cfg.Shopify.AccessToken,
	})
	if err != nil {
		return fmt.Errorf("error creating http service: %w", err)
	}

	interruptChan := cmdutil.InterruptChan()

	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-interruptChan

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		return fmt.Errorf("error shutting down http service: %w", err)
	}

	logger.InfoContext(ctx, "http service is stopped")

	return nil
}
