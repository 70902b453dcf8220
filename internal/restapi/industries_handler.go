package restapi

import (
	"net/http"

	"pathways.rf2lab.org/internal/models"
	"pathways.rf2lab.org/internal/utils"
)

func (api *RestAPI) industriesHandler(w http.ResponseWriter, r *http.Request) {
	references := models.NewEmptyReferences()
	references.Sectors = api.Dataset.Sectors()

	api.sendResponse(w, r, models.NewListResponse(api.Dataset.Industries(), references))
}

func (api *RestAPI) industryHandler(w http.ResponseWriter, r *http.Request) {
	slug := utils.ExtractParam(r, "slug")

	profile, ok := api.Dataset.Industry(slug)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	references := models.NewEmptyReferences()
	references.Sectors = api.Dataset.SectorsFor(profile)

	api.sendResponse(w, r, models.NewEntryResponse(profile, references))
}
