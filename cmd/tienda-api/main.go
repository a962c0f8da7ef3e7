// Package main boots the online-store API HTTP server.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matiasrv/tienda-api/internal/config"
	httpapi "github.com/matiasrv/tienda-api/internal/http"
	"github.com/matiasrv/tienda-api/internal/obs"
	"github.com/matiasrv/tienda-api/internal/service"
	"github.com/matiasrv/tienda-api/internal/store"
)

func main() {
	obs.InitLogger()
	cfg, err := config.Load()
	if err != nil {
		obs.Logger.Error("config_error", "error", err)
		os.Exit(1)
	}
	obs.Logger.Info("service_starting", "store_driver", cfg.StoreDriver)

	var st store.Store
	var db *sql.DB
	switch cfg.StoreDriver {
	case "memory":
		st = store.NewMemory()
	default:
		my, err := store.OpenMySQL(cfg.DB, cfg.QueryTimeout)
		if err != nil {
			obs.Logger.Error("store_open_error", "error", err)
			os.Exit(1)
		}
		st = my
		db = my.DB()
	}
	defer st.Close()

	app := httpapi.NewApp(cfg,
		service.NewCatalog(st),
		service.NewCustomers(st),
		service.NewOrders(st),
		service.NewReports(st),
		db,
	)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
