package api

import (
	"net/http"
	"strconv"

	"github.com/casebridge-io/casebridge/db/query"
	"github.com/casebridge-io/casebridge/pkg/errs"
	"github.com/casebridge-io/casebridge/utils"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ListEvents returns the most recent events, newest first. An out-of-range
// limit is clamped rather than rejected.
func (api *API) ListEvents(w http.ResponseWriter, r *http.Request) {
	var q query.EventQuery
	q.SetLimit(int64(api.limit(r)))
	q.Order("id", query.DESC)

	if v := api.query(r, "event"); v != "" {
		q.EventType = &v
	}
	if v := api.query(r, "status"); v != "" {
		q.Status = &v
	}
	if v := api.query(r, "case_id"); v != "" {
		q.CaseID = &v
	}

	list, err := api.db.Events.List(r.Context(), &q)
	if err != nil {
		api.error(w, err)
		return
	}
	api.json(200, w, list)
}

func (api *API) limit(r *http.Request) int {
	limit, err := strconv.Atoi(api.query(r, "limit"))
	if err != nil {
		return defaultListLimit
	}
	return utils.Clamp(limit, 1, maxListLimit)
}

func (api *API) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(api.param(r, "id"), 10, 64)
	api.assert(err)

	event, err := api.db.Events.Get(r.Context(), id)
	if err != nil {
		api.error(w, err)
		return
	}
	if event == nil {
		api.error(w, errs.ErrNotFound)
		return
	}
	api.json(200, w, event)
}

// ReprocessEvent resets a failed or received event and schedules another
// run. The eligibility check and the reset are one guarded statement, so
// a concurrent worker cannot observe a half-reset record.
func (api *API) ReprocessEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(api.param(r, "id"), 10, 64)
	api.assert(err)

	event, err := api.db.Events.Get(r.Context(), id)
	if err != nil {
		api.error(w, err)
		return
	}
	if event == nil {
		api.error(w, errs.ErrNotFound)
		return
	}

	reset, err := api.db.Events.ResetForReprocess(r.Context(), id)
	if err != nil {
		api.error(w, err)
		return
	}
	if !reset {
		api.error(w, errs.NewInvalidTransition(string(event.Status)))
		return
	}

	api.scheduler.Schedule(id)
	api.json(200, w, map[string]string{
		"status":  "queued",
		"message": "event queued for reprocessing",
	})
}
