package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"pathways.rf2lab.org/internal/dashboard"
	"pathways.rf2lab.org/internal/models"
	"pathways.rf2lab.org/internal/utils"
)

const maxBodyBytes = 4 << 10

type industryRequest struct {
	Industry string `json:"industry"`
}

type sensitivityRequest struct {
	Sensitivity *float64 `json:"sensitivity"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (api *RestAPI) selectIndustryHandler(w http.ResponseWriter, r *http.Request) {
	var req industryRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		api.badRequestResponse(w, r, "malformed JSON body")
		return
	}

	fieldErrors := utils.FieldErrors{}
	name := utils.SanitizeInput(req.Industry)
	fieldErrors.Add("industry", utils.ValidateIndustryName(name))
	if !fieldErrors.Empty() {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	var view models.View
	err := api.WithSession(w, r, func(s *dashboard.Session) error {
		var err error
		view, err = s.SelectIndustry(name)
		return err
	})
	if errors.Is(err, dashboard.ErrInvalidSelection) {
		fieldErrors.Add("industry", errors.New("unknown industry"))
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, api.viewResponse(view))
}

func (api *RestAPI) adjustSensitivityHandler(w http.ResponseWriter, r *http.Request) {
	var req sensitivityRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		api.badRequestResponse(w, r, "malformed JSON body")
		return
	}
	if req.Sensitivity == nil {
		fieldErrors := utils.FieldErrors{}
		fieldErrors.Add("sensitivity", errors.New("sensitivity is required"))
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	var view models.View
	err := api.WithSession(w, r, func(s *dashboard.Session) error {
		var err error
		view, err = s.AdjustCostSensitivity(*req.Sensitivity)
		return err
	})
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, api.viewResponse(view))
}
