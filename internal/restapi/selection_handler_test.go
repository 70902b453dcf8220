package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathways.rf2lab.org/internal/models"
)

func TestViewHandlerStartsOnDefaultSelection(t *testing.T) {
	server, client := testServer(t, createTestApi(t))

	resp, model := getEndpoint[entryData[models.View]](t, client, server.URL+"/api/v1/view")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	view := model.Data.Entry
	assert.Equal(t, "Food & Beverage", view.Industry.Name)
	assert.Equal(t, 50.0, view.Sensitivity.Value)
	assert.Equal(t, 50.0, view.Cost.Estimate)
	assert.NotEmpty(t, model.Data.References.Sectors)

	var hasCookie bool
	for _, c := range resp.Cookies() {
		if c.Name == "rf2_session" {
			hasCookie = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, hasCookie, "first request should set the session cookie")
}

func TestSelectIndustryHandler(t *testing.T) {
	server, client := testServer(t, createTestApi(t))

	t.Run("switches industry for the session", func(t *testing.T) {
		resp, model := postJSON[entryData[models.View]](t, client, server.URL+"/api/v1/selection/industry", `{"industry":"Technology"}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Technology", model.Data.Entry.Industry.Name)
		assert.Equal(t, 25.0, model.Data.Entry.Coverage.Covered)
		assert.Equal(t, 55.0, model.Data.Entry.Coverage.Gap)

		_, after := getEndpoint[entryData[models.View]](t, client, server.URL+"/api/v1/view")
		assert.Equal(t, "Technology", after.Data.Entry.Industry.Name)
	})

	t.Run("unknown industry keeps prior selection", func(t *testing.T) {
		resp, model := postJSON[any](t, client, server.URL+"/api/v1/selection/industry", `{"industry":"Finance"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{"unknown industry"}, model.FieldErrors["industry"])

		_, after := getEndpoint[entryData[models.View]](t, client, server.URL+"/api/v1/view")
		assert.Equal(t, "Technology", after.Data.Entry.Industry.Name)
	})

	t.Run("rejects invalid characters", func(t *testing.T) {
		resp, model := postJSON[any](t, client, server.URL+"/api/v1/selection/industry", `{"industry":"Tech -- drop"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, model.FieldErrors, "industry")
	})

	t.Run("rejects missing industry", func(t *testing.T) {
		resp, model := postJSON[any](t, client, server.URL+"/api/v1/selection/industry", `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{"industry is required"}, model.FieldErrors["industry"])
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		resp, model := postJSON[any](t, client, server.URL+"/api/v1/selection/industry", `{"industry":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "malformed JSON body", model.Text)
	})
}

func TestAdjustSensitivityHandler(t *testing.T) {
	server, client := testServer(t, createTestApi(t))

	t.Run("clamps above range", func(t *testing.T) {
		resp, model := postJSON[entryData[models.View]](t, client, server.URL+"/api/v1/selection/sensitivity", `{"sensitivity":150}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		view := model.Data.Entry
		assert.Equal(t, 100.0, view.Sensitivity.Value)
		assert.Equal(t, 85.0, view.Cost.Estimate)
	})

	t.Run("clamps below range", func(t *testing.T) {
		_, model := postJSON[entryData[models.View]](t, client, server.URL+"/api/v1/selection/sensitivity", `{"sensitivity":-5}`)

		assert.Equal(t, 0.0, model.Data.Entry.Sensitivity.Value)
		assert.Equal(t, 15.0, model.Data.Entry.Cost.Estimate)
	})

	t.Run("requires a value", func(t *testing.T) {
		resp, model := postJSON[any](t, client, server.URL+"/api/v1/selection/sensitivity", `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, model.FieldErrors, "sensitivity")
	})

	t.Run("rejects non-numeric", func(t *testing.T) {
		resp, _ := postJSON[any](t, client, server.URL+"/api/v1/selection/sensitivity", `{"sensitivity":"high"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSessionsAreIsolated(t *testing.T) {
	api := createTestApi(t)
	server, first := testServer(t, api)
	_, second := testServer(t, api)

	resp, _ := postJSON[entryData[models.View]](t, first, server.URL+"/api/v1/selection/industry", `{"industry":"heavy-manufacturing"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, a := getEndpoint[entryData[models.View]](t, first, server.URL+"/api/v1/view")
	_, b := getEndpoint[entryData[models.View]](t, second, server.URL+"/api/v1/view")
	assert.Equal(t, "Heavy Manufacturing", a.Data.Entry.Industry.Name)
	assert.Equal(t, "Food & Beverage", b.Data.Entry.Industry.Name)
}

func TestCurrentTimeAndHealth(t *testing.T) {
	server, client := testServer(t, createTestApi(t))

	resp, model := getEndpoint[models.CurrentTimeData](t, client, server.URL+"/api/v1/current-time")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, model.CurrentTime, model.Data.Entry.Time, 5000)
	assert.NotEmpty(t, model.Data.Entry.ReadableTime)

	resp, health := getEndpoint[healthStatus](t, client, server.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health.Data.Status)
	assert.Equal(t, "embedded", health.Data.Dataset)
	assert.Equal(t, 3, health.Data.Industries)
}
