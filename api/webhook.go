package api

import (
	"io"
	"net/http"
)

type webhookResponse struct {
	Status  string `json:"status"`
	EventID int64  `json:"eventId"`
	Message string `json:"message"`
}

// Webhook accepts an inbound Pega notification. The response is written
// as soon as the event is persisted; processing happens asynchronously.
func (api *API) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	api.assert(err)

	event, err := api.intake.Accept(r.Context(), body)
	if err != nil {
		api.error(w, err)
		return
	}

	api.json(200, w, webhookResponse{
		Status:  "received",
		EventID: event.ID,
		Message: "event accepted for processing",
	})
}
