package restapi

import (
	"net/http"

	"pathways.rf2lab.org/internal/models"
)

func (api *RestAPI) sectorsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(api.Dataset.Sectors(), models.NewEmptyReferences()))
}
