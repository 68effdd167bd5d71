// Package api exposes the HTTP surface: webhook intake, event queries,
// metrics and the outbound Pega proxy.
package api

import (
	"errors"
	"net/http"

	"github.com/casebridge-io/casebridge/db"
	"github.com/casebridge-io/casebridge/pega"
	"github.com/casebridge-io/casebridge/pipeline"
	"github.com/casebridge-io/casebridge/pkg/errs"
	"github.com/casebridge-io/casebridge/services/intake"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type API struct {
	log         *zap.SugaredLogger
	db          *db.DB
	intake      *intake.Service
	scheduler   pipeline.Scheduler
	client      pega.Client
	middlewares []mux.MiddlewareFunc
}

type Options struct {
	DB          *db.DB
	Intake      *intake.Service
	Scheduler   pipeline.Scheduler
	Client      pega.Client
	Middlewares []mux.MiddlewareFunc
}

func NewAPI(opts Options) *API {
	return &API{
		log:         zap.S(),
		db:          opts.DB,
		intake:      opts.Intake,
		scheduler:   opts.Scheduler,
		client:      opts.Client,
		middlewares: opts.Middlewares,
	}
}

type ErrorResponse struct {
	Message string      `json:"message"`
	Error   interface{} `json:"error,omitempty"`
}

// param returns the value of an url variable
func (api *API) param(r *http.Request, variable string) string {
	return mux.Vars(r)[variable]
}

// query returns the url query value if it exists.
func (api *API) query(r *http.Request, name string) string {
	return r.URL.Query().Get(name)
}

func (api *API) json(code int, w http.ResponseWriter, data interface{}) {
	JSON(w, code, data)
}

// error maps the error taxonomy onto HTTP status codes.
func (api *API) error(w http.ResponseWriter, err error) {
	var validation *errs.ValidationError
	var transition *errs.InvalidTransitionError
	var upstream *errs.UpstreamError
	var storage *errs.StorageError

	switch {
	case errors.As(err, &validation):
		api.json(400, w, ErrorResponse{Message: validation.Message, Error: validation.Fields})
	case errors.Is(err, errs.ErrNotFound):
		api.json(404, w, ErrorResponse{Message: "not found"})
	case errors.As(err, &transition):
		api.json(400, w, ErrorResponse{Message: transition.Error()})
	case errors.Is(err, errs.ErrUpstreamUnavailable):
		api.json(503, w, ErrorResponse{Message: err.Error()})
	case errors.As(err, &upstream):
		api.json(500, w, ErrorResponse{Message: upstream.Error()})
	case errors.As(err, &storage):
		api.log.Errorf("[api] storage failure: %v", err)
		api.json(500, w, ErrorResponse{Message: "internal error"})
	default:
		api.log.Errorf("[api] unexpected error: %v", err)
		api.json(500, w, ErrorResponse{Message: "internal error"})
	}
}

func (api *API) assert(err error) {
	if err != nil {
		panic(err)
	}
}

// Handler returns a http.Handler
func (api *API) Handler() http.Handler {
	r := mux.NewRouter()

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, 404, ErrorResponse{Message: "not found"})
	})

	for _, m := range api.middlewares {
		r.Use(m)
	}
	r.Use(PanicRecovery)

	r.HandleFunc("/health", api.Health).Methods("GET")

	r.HandleFunc("/webhook/pega", api.Webhook).Methods("POST")

	r.HandleFunc("/events", api.ListEvents).Methods("GET")
	r.HandleFunc("/events/{id:[0-9]+}", api.GetEvent).Methods("GET")
	r.HandleFunc("/events/{id:[0-9]+}/reprocess", api.ReprocessEvent).Methods("POST")

	r.HandleFunc("/metrics", api.Metrics).Methods("GET")
	r.HandleFunc("/dashboard", api.Dashboard).Methods("GET")

	r.HandleFunc("/pega/case", api.CreatePegaCase).Methods("POST")
	r.HandleFunc("/pega/case/{case_id}", api.GetPegaCase).Methods("GET")
	r.HandleFunc("/pega/case/{case_id}", api.UpdatePegaCase).Methods("PUT")
	r.HandleFunc("/pega/case/{case_id}/note", api.AddPegaNote).Methods("POST")
	r.HandleFunc("/pega/case/{case_id}/action/{action_id}", api.ExecutePegaAction).Methods("POST")

	return r
}
