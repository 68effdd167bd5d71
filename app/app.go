// Package app assembles the service: configuration, logging, storage,
// the processing pipeline and the HTTP server.
package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/casebridge-io/casebridge/api"
	"github.com/casebridge-io/casebridge/config"
	"github.com/casebridge-io/casebridge/db"
	"github.com/casebridge-io/casebridge/db/migrator"
	"github.com/casebridge-io/casebridge/dispatcher"
	"github.com/casebridge-io/casebridge/handlers"
	"github.com/casebridge-io/casebridge/pega"
	"github.com/casebridge-io/casebridge/pipeline"
	"github.com/casebridge-io/casebridge/pkg/log"
	"github.com/casebridge-io/casebridge/pkg/safe"
	"github.com/casebridge-io/casebridge/services/intake"
	"github.com/casebridge-io/casebridge/services/reporting"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var (
	ErrApplicationStarted = errors.New("already started")
	ErrApplicationStopped = errors.New("already stopped")
)

type Application struct {
	cfg *config.Config

	mux     sync.Mutex
	started bool

	stop chan struct{}

	log       *zap.SugaredLogger
	db        *db.DB
	scheduler *pipeline.AsyncScheduler
	reporter  *reporting.Reporter
	server    *http.Server
}

func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		cfg:  cfg,
		stop: make(chan struct{}),
	}
	if err := app.initialize(); err != nil {
		return nil, err
	}
	return app, nil
}

func (app *Application) initialize() error {
	logger, err := log.NewZapLogger(&app.cfg.Log)
	if err != nil {
		return err
	}
	app.log = logger

	sqlDB, err := db.NewSqlDB(app.cfg.Database)
	if err != nil {
		return err
	}
	if err := migrator.New(sqlDB).Up(); err != nil {
		return err
	}
	app.db = db.NewDB(sqlDB, logger)

	var client pega.Client
	if app.cfg.Pega.Enabled() {
		client = pega.NewHTTPClient(app.cfg.Pega)
		app.log.Infof("pega client configured: %s", app.cfg.Pega.BaseURL)
	} else {
		app.log.Info("pega client is not configured, outbound case operations are disabled")
	}

	disp := dispatcher.New(client)
	handlers.RegisterAll(disp)

	app.scheduler = pipeline.NewAsyncScheduler(app.cfg.Worker, pipeline.NewPipeline(app.db, disp))
	app.reporter = reporting.NewReporter(app.db)

	a := api.NewAPI(api.Options{
		DB:          app.db,
		Intake:      intake.NewService(app.db, app.scheduler),
		Scheduler:   app.scheduler,
		Client:      client,
		Middlewares: []mux.MiddlewareFunc{api.AccessLog},
	})

	app.server = &http.Server{
		Addr:    app.cfg.Server.Listen,
		Handler: a.Handler(),
	}

	return nil
}

func (app *Application) DB() *db.DB {
	return app.db
}

func (app *Application) Config() *config.Config {
	return app.cfg
}

// Start starts the application
func (app *Application) Start() error {
	app.mux.Lock()
	defer app.mux.Unlock()

	if app.started {
		return ErrApplicationStarted
	}

	app.log.Infof("starting casebridge %s", config.VERSION)

	if err := app.reporter.Start(); err != nil {
		return err
	}

	safe.Go(func() {
		app.log.Infof("listening on %s", app.cfg.Server.Listen)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.log.Errorf("server failure: %v", err)
			close(app.stop)
		}
	})

	app.started = true
	return nil
}

func (app *Application) Wait() {
	<-app.stop
}

// Stop stops the application
func (app *Application) Stop() error {
	app.mux.Lock()
	defer app.mux.Unlock()

	if !app.started {
		return ErrApplicationStopped
	}

	app.log.Info("exiting")
	defer func() {
		app.log.Info("exit")
		_ = app.log.Sync()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.server.Shutdown(ctx); err != nil {
		app.log.Warnf("server shutdown: %v", err)
	}

	app.reporter.Stop()
	app.scheduler.Shutdown()
	if err := app.db.Close(); err != nil {
		app.log.Warnf("database close: %v", err)
	}

	app.started = false
	close(app.stop)
	return nil
}
