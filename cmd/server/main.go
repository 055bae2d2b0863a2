package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/medinsure/underwriting-admin/modules"
	"github.com/medinsure/underwriting-admin/pkg/application"
	"github.com/medinsure/underwriting-admin/pkg/configuration"
	"github.com/medinsure/underwriting-admin/pkg/eventbus"
	"github.com/medinsure/underwriting-admin/pkg/metrics"
	"github.com/medinsure/underwriting-admin/pkg/middleware"
)

const schemaDir = "infrastructure/persistence/schema"

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		logger.WithError(err).Fatal("could not create database pool")
	}
	defer pool.Close()

	app := application.New(pool, eventbus.NewEventPublisher(logger), logger)
	if err := modules.Load(app); err != nil {
		logger.WithError(err).Fatal("could not load modules")
	}

	if err := applyMigrations(conf, app); err != nil {
		logger.WithError(err).Fatal("could not apply migrations")
	}

	router := mux.NewRouter()
	router.Use(
		middleware.RequestID(),
		middleware.LogRequests(logger),
		middleware.ProvideActor(),
		middleware.WithPool(pool),
	)
	for _, controller := range app.Controllers() {
		controller.Register(router)
		logger.WithField("controller", controller.Key()).Info("controller mounted")
	}
	if conf.Prometheus.Enabled {
		metrics.NewPrometheusController(conf.Prometheus.Path).Register(router)
	}

	srv := &http.Server{
		Addr:         conf.SocketAddress,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	go func() {
		logger.WithField("address", conf.SocketAddress).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	logger.Info("server stopped")
}

// applyMigrations runs each module's embedded schema through goose in
// registration order. Version numbers are allocated per module so the
// shared goose version table advances across filesystems.
func applyMigrations(conf *configuration.Configuration, app application.Application) error {
	db, err := sql.Open("postgres", conf.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	for _, schema := range app.Migrations().Schemas() {
		goose.SetBaseFS(schema)
		if err := goose.Up(db, schemaDir, goose.WithAllowMissing()); err != nil {
			return err
		}
	}
	return nil
}
