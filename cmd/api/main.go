package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/mchisenga/storefront-backend/internal/config"
	"github.com/mchisenga/storefront-backend/internal/events"
	"github.com/mchisenga/storefront-backend/internal/modules/catalog"
	"github.com/mchisenga/storefront-backend/internal/modules/customer"
	"github.com/mchisenga/storefront-backend/internal/modules/inventory"
	"github.com/mchisenga/storefront-backend/internal/modules/order"
	"github.com/mchisenga/storefront-backend/internal/modules/payment"
	"github.com/mchisenga/storefront-backend/internal/modules/report"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Events ──────────────────────────────────────────────
	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.ServiceName)
		defer kp.Close()
		publisher = kp
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Catalog & Customers ─────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customer.NewHandler(customerService).RegisterRoutes(router)

	// ── Stock ledger ────────────────────────────────────────
	ledger := inventory.NewPostgresLedger(db)

	// ── Orders & Payments ───────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	paymentRepo := payment.NewPostgresRepository(db)
	paymentService := payment.NewService(paymentRepo, orderRepo, publisher)
	payment.NewHandler(paymentService).RegisterRoutes(router)

	orderService := order.NewService(customerRepo, catalogRepo, ledger, orderRepo, paymentService, publisher)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Reporting ───────────────────────────────────────────
	reportRepo := report.NewPostgresRepository(db)
	reportService := report.NewService(reportRepo)
	report.NewHandler(reportService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	fmt.Printf("Storefront API server starting on %s\n", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, router))
}
