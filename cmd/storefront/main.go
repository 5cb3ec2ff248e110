package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/example/storefront/internal/analytics"
	"github.com/example/storefront/internal/api"
	"github.com/example/storefront/internal/cart"
	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/productapi"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Configuration from environment variables
	productAPIURL := getEnv("PRODUCT_API_URL", "http://localhost:8000/api/v1")
	listenAddr := getEnv("LISTEN_ADDR", ":8080")
	analyticsMode := getEnv("ANALYTICS_MODE", "http") // http | kafka | off
	shippingFee := getEnvInt64("SHIPPING_FEE_CENTS", cart.DefaultPricing.ShippingFeeCents)
	taxRate := getEnvFloat("TAX_RATE", cart.DefaultPricing.TaxRate)

	log.Println("[Storefront] ========================================")
	log.Println("[Storefront] Storefront core")
	log.Println("[Storefront] ========================================")
	log.Printf("[Storefront] Product API: %s", productAPIURL)
	log.Printf("[Storefront] Analytics:   %s", analyticsMode)

	// Product fetch client and catalog engine
	client := productapi.NewClient(productAPIURL, nil)
	engine := catalog.NewEngine(client)

	// Analytics tracker
	var notifier analytics.Notifier
	switch analyticsMode {
	case "kafka":
		brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
		topic := getEnv("KAFKA_TOPIC", "storefront-analytics")
		log.Printf("[Storefront] Kafka: %v topic=%s", brokers, topic)
		kafkaNotifier := analytics.NewKafkaNotifier(brokers, topic)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
	case "http":
		notifier = analytics.NewHTTPNotifier(productAPIURL, nil)
	case "off":
		notifier = nil
	default:
		log.Fatalf("[Storefront] Unknown ANALYTICS_MODE %q", analyticsMode)
	}
	tracker := analytics.NewTracker(notifier)

	// Session carts
	pricing := cart.Pricing{ShippingFeeCents: shippingFee, TaxRate: taxRate}
	carts := api.NewSessionCarts(pricing)

	// Initial catalog load (fetch-on-mount); failures stay locally
	// recoverable via POST /catalog/refetch.
	go func() {
		engine.Refetch(ctx)
		if engine.State() == catalog.StateFailed {
			log.Printf("[Storefront] Initial catalog fetch failed: %s", engine.Err())
		} else {
			log.Printf("[Storefront] Catalog loaded: %d products", len(engine.Snapshot().Products))
		}
	}()

	// HTTP server
	handlers := api.NewHandlers(engine, client, carts, tracker)
	server := &http.Server{
		Addr:    listenAddr,
		Handler: api.NewRouter(handlers),
	}

	go func() {
		log.Printf("[Storefront] Server started on %s", listenAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[Storefront] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Storefront] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		log.Fatalf("[Storefront] Invalid %s: %q", key, raw)
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		log.Fatalf("[Storefront] Invalid %s: %q", key, raw)
	}
	return value
}
