package api

import "net/http"

func (api *API) Health(w http.ResponseWriter, r *http.Request) {
	api.json(200, w, map[string]string{"status": "ok"})
}
