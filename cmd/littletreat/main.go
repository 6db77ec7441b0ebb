package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"littletreat/internal/config"
	"littletreat/internal/database"
	"littletreat/internal/handler"
	"littletreat/internal/metrics"
	"littletreat/internal/mw"
	"littletreat/internal/service"
	"littletreat/internal/worker"
)

const (
	sessionTTL     = 12 * time.Hour
	sessionIdle    = 2 * time.Hour
	sweepInterval  = 5 * time.Minute
	queueSize      = 256
	logTaskTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.New(os.Args[1:])
	if err != nil {
		slog.Error("failed to read config", "error", err)
		os.Exit(1)
	}

	if cfg.LogJSON {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid time zone", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	menu, err := config.LoadMenu(ctx, cfg.MenuSource)
	if err != nil {
		slog.Error("failed to load menu", "source", cfg.MenuSource, "error", err)
		os.Exit(1)
	}
	store, err := config.LoadStore(ctx, cfg.StoreSource)
	if err != nil {
		slog.Error("failed to load store config", "source", cfg.StoreSource, "error", err)
		os.Exit(1)
	}

	var db *sql.DB
	if store.GoogleSheets != nil && store.GoogleSheets.Method == config.MethodPostgres {
		db, err = database.NewDB(ctx, cfg.DatabaseURI)
		if err != nil {
			slog.Error("failed to connect to DB", "error", err)
			os.Exit(1)
		}
		defer database.CloseDB(db)

		if err := database.InitSchema(ctx, db); err != nil {
			slog.Error("failed to init DB schema", "error", err)
			os.Exit(1)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Services
	orderLog, err := service.NewOrderLog(store.GoogleSheets, db, loc)
	if err != nil {
		slog.Error("failed to configure order log", "error", err)
		os.Exit(1)
	}
	slots := service.GenerateSlots(store.DeliveryTime)
	sessions := service.NewCartSessions(menu.Visible())
	composer := service.NewComposer(store.ShopName, *store.DeliveryDate, store.WhatsApp.Domain, store.WhatsApp.Number)

	// Workers
	dispatcher := worker.NewDispatcher(queueSize, logTaskTimeout, m)
	sweeper := worker.NewSessionSweeper(sessions, m, sweepInterval, sessionIdle)

	checkout := service.NewCheckout(composer, orderLog, dispatcher, slots)
	board := service.NewAdminBoard(orderLog, dispatcher, loc)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.Metrics(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", metrics.Handler(reg))

	// Storefront
	r.Get("/api/menu", handler.MenuHandler(menu))
	r.Get("/api/delivery", handler.DeliveryHandler(*store.DeliveryDate, slots))

	r.Group(func(r chi.Router) {
		r.Use(mw.Session(cfg.SessionSecret, sessionTTL))

		r.Get("/api/cart", handler.GetCartHandler(sessions))
		r.Put("/api/cart/{itemID}", handler.SetQuantityHandler(sessions))
		r.Post("/api/cart/{itemID}/adjust", handler.AdjustQuantityHandler(sessions))
		r.Delete("/api/cart", handler.ClearCartHandler(sessions))
		r.Post("/api/orders", handler.PlaceOrderHandler(sessions, checkout, m))
	})

	// Admin
	r.Get("/api/admin/orders", handler.ListOrdersHandler(board))
	r.Post("/api/admin/orders/refresh", handler.RefreshOrdersHandler(board))
	r.Post("/api/admin/orders/cycle", handler.CycleStatusHandler(board))
	r.Post("/api/admin/orders/status", handler.SetStatusHandler(board))

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	workersDone := make(chan struct{})
	go func() {
		dispatcher.Start(ctx)
		close(workersDone)
	}()
	go sweeper.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress, "menu_items", len(menu.MenuItems), "slots", len(slots))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			select {
			case quit <- syscall.SIGTERM:
			default:
			}
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	cancel() // stop workers, flushing queued order log writes
	<-workersDone

	slog.Info("server stopped")
}
