package restapi

import (
	"net/http"

	"pathways.rf2lab.org/internal/models"
)

type healthStatus struct {
	Status     string `json:"status"`
	Dataset    string `json:"dataset"`
	Industries int    `json:"industries"`
	Sessions   int    `json:"sessions"`
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{
		Status:     "ok",
		Dataset:    api.Dataset.Source(),
		Industries: len(api.Dataset.Industries()),
		Sessions:   api.Sessions.Len(),
	}
	api.sendResponse(w, r, models.NewOKResponse(status))
}
