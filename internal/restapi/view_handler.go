package restapi

import (
	"net/http"

	"pathways.rf2lab.org/internal/dashboard"
	"pathways.rf2lab.org/internal/models"
)

// viewResponse wraps the session's view with the sectors its industry depends on.
func (api *RestAPI) viewResponse(view models.View) models.ResponseModel {
	references := models.NewEmptyReferences()
	if profile, ok := api.Dataset.Industry(view.Industry.Slug); ok {
		references.Sectors = api.Dataset.SectorsFor(profile)
	}
	return models.NewEntryResponse(view, references)
}

func (api *RestAPI) viewHandler(w http.ResponseWriter, r *http.Request) {
	var view models.View
	err := api.WithSession(w, r, func(s *dashboard.Session) error {
		view = s.View()
		return nil
	})
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, api.viewResponse(view))
}
