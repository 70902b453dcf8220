package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	testCode := http.StatusCreated
	testData := map[string]string{"key": "value"}
	testText := "Resource Created"

	before := time.Now().UnixNano() / int64(time.Millisecond)
	response := NewResponse(testCode, testData, testText)
	after := time.Now().UnixNano() / int64(time.Millisecond)

	assert.Equal(t, testCode, response.Code, "Response code should match input")
	assert.Equal(t, testData, response.Data, "Response data should match input")
	assert.Equal(t, testText, response.Text, "Response text should match input")
	assert.Equal(t, 2, response.Version, "Response version should be 2")
	assert.GreaterOrEqual(t, response.CurrentTime, before)
	assert.LessOrEqual(t, response.CurrentTime, after)
}

func TestNewEntryResponse(t *testing.T) {
	entryData := map[string]string{"slug": "technology"}
	references := NewEmptyReferences()

	response := NewEntryResponse(entryData, references)

	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Equal(t, 2, response.Version)

	responseData, ok := response.Data.(map[string]interface{})
	require.True(t, ok, "Response data should be a map")
	assert.Equal(t, entryData, responseData["entry"])
	assert.Equal(t, references, responseData["references"])
}

func TestNewListResponse(t *testing.T) {
	itemList := []string{"food-beverage", "technology"}
	references := NewEmptyReferences()

	response := NewListResponse(itemList, references)

	assert.Equal(t, http.StatusOK, response.Code)
	responseData, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, itemList, responseData["list"])
	assert.Equal(t, references, responseData["references"])
}

func TestResponseModelJSON(t *testing.T) {
	response := ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: 1746273600000,
		Data:        map[string]string{"entry": "x"},
		Text:        "OK",
		Version:     2,
	}

	raw, err := json.Marshal(response)
	require.NoError(t, err)

	assert.JSONEq(t, `{"code":200,"currentTime":1746273600000,"data":{"entry":"x"},"text":"OK","version":2}`, string(raw))
}
