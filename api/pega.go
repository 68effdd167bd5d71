package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/casebridge-io/casebridge/pkg/errs"
	"github.com/casebridge-io/casebridge/pkg/types"
	"github.com/casebridge-io/casebridge/utils"
)

// readDocument decodes an optional JSON object body. An empty body yields
// an empty document.
func readDocument(r *http.Request) (types.Map, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return types.Map{}, nil
	}
	var data types.Map
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errs.NewValidationError("invalid JSON")
	}
	return data, nil
}

func (api *API) CreatePegaCase(w http.ResponseWriter, r *http.Request) {
	if api.client == nil {
		api.error(w, errs.ErrUpstreamUnavailable)
		return
	}

	caseType := api.query(r, "case_type")
	if caseType == "" {
		api.error(w, errs.NewValidationError("case_type is required"))
		return
	}

	data, err := readDocument(r)
	if err != nil {
		api.error(w, err)
		return
	}

	result, err := api.client.CreateCase(r.Context(), caseType, data)
	if err != nil {
		api.error(w, err)
		return
	}
	api.json(200, w, result)
}

func (api *API) GetPegaCase(w http.ResponseWriter, r *http.Request) {
	if api.client == nil {
		api.error(w, errs.ErrUpstreamUnavailable)
		return
	}

	result, err := api.client.GetCase(r.Context(), api.param(r, "case_id"))
	if err != nil {
		api.error(w, err)
		return
	}
	api.json(200, w, result)
}

func (api *API) UpdatePegaCase(w http.ResponseWriter, r *http.Request) {
	if api.client == nil {
		api.error(w, errs.ErrUpstreamUnavailable)
		return
	}

	data, err := readDocument(r)
	if err != nil {
		api.error(w, err)
		return
	}

	result, err := api.client.UpdateCase(r.Context(), api.param(r, "case_id"), data)
	if err != nil {
		api.error(w, err)
		return
	}
	api.json(200, w, result)
}

type noteRequest struct {
	Note string `json:"note" validate:"required"`
}

func (api *API) AddPegaNote(w http.ResponseWriter, r *http.Request) {
	if api.client == nil {
		api.error(w, errs.ErrUpstreamUnavailable)
		return
	}

	body, err := io.ReadAll(r.Body)
	api.assert(err)

	var request noteRequest
	if err := json.Unmarshal(body, &request); err != nil {
		api.error(w, errs.NewValidationError("invalid JSON"))
		return
	}
	if err := utils.Validate(&request); err != nil {
		api.error(w, err)
		return
	}

	if err := api.client.AddNote(r.Context(), api.param(r, "case_id"), request.Note); err != nil {
		api.error(w, err)
		return
	}
	api.json(200, w, map[string]string{"status": "ok"})
}

func (api *API) ExecutePegaAction(w http.ResponseWriter, r *http.Request) {
	if api.client == nil {
		api.error(w, errs.ErrUpstreamUnavailable)
		return
	}

	data, err := readDocument(r)
	if err != nil {
		api.error(w, err)
		return
	}

	err = api.client.ExecuteAction(r.Context(), api.param(r, "case_id"), api.param(r, "action_id"), data)
	if err != nil {
		api.error(w, err)
		return
	}
	api.json(200, w, map[string]string{"status": "ok"})
}
