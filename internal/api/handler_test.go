package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statement-ingestion-service/internal/parsers"
	"statement-ingestion-service/internal/templates"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	handler := NewHandler(templates.DefaultRegistry(), parsers.NewIngestor())
	handler.RegisterRoutes(app)
	return app
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, len(templates.Builtin()), body["templates"])
}

func TestImportCSV(t *testing.T) {
	app := newTestApp(t)

	csv := "Date,Narration,Debit,Credit,Balance\n" +
		"2024-01-05,Salary,,50000,50000\n" +
		"2024-01-10,Rent,15000,,35000\n"
	body, contentType := multipartBody(t, "statement.csv", []byte(csv), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got ImportResponse
	decodeJSON(t, resp, &got)
	require.True(t, got.Success)
	require.NotNil(t, got.Outcome)
	assert.Equal(t, 2, got.Outcome.Result.TransactionCount)
	assert.Equal(t, "hdfc", got.Outcome.Detection.Template.ID)
	assert.Equal(t, "INR", got.Outcome.Result.Statement.Currency)
	assert.Equal(t, "32500", got.Outcome.Result.Statement.NetProfit.String())
}

func TestImportCurrencyOverride(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartBody(t, "statement.csv",
		[]byte("Date,Description,Amount\n2024-01-05,Coffee,-4.50\n"),
		map[string]string{"currency": "USD", "currencySymbol": "$"})

	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got ImportResponse
	decodeJSON(t, resp, &got)
	require.True(t, got.Success)
	assert.Equal(t, "USD", got.Outcome.Result.Statement.Currency)
	assert.Equal(t, "$", got.Outcome.Result.Statement.CurrencySymbol)
}

func TestImportMissingFile(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/import", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImportUnsupportedFormat(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartBody(t, "notes.txt", []byte("just text"), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)

	var got ImportResponse
	decodeJSON(t, resp, &got)
	assert.False(t, got.Success)
	assert.NotEmpty(t, got.Error)
}

func TestListTemplates(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Templates []*templates.Template `json:"templates"`
	}
	decodeJSON(t, resp, &body)
	assert.Len(t, body.Templates, len(templates.Builtin()))
}

func TestDetect(t *testing.T) {
	app := newTestApp(t)

	t.Run("template match", func(t *testing.T) {
		payload, _ := json.Marshal(DetectRequest{
			Headers: []string{"Date", "Narration", "Withdrawal Amt", "Deposit Amt", "Closing Balance"},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/templates/detect", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got DetectResponse
		decodeJSON(t, resp, &got)
		assert.True(t, got.Detected)
		require.NotNil(t, got.Detection)
		assert.Equal(t, "hdfc", got.Detection.Template.ID)
		assert.True(t, got.Usable)
	})

	t.Run("generic fallback", func(t *testing.T) {
		payload, _ := json.Marshal(DetectRequest{Headers: []string{"Date", "Memo", "Amt"}})
		req := httptest.NewRequest(http.MethodPost, "/api/templates/detect", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got DetectResponse
		decodeJSON(t, resp, &got)
		assert.False(t, got.Detected)
		assert.Nil(t, got.Detection)
		assert.True(t, got.Usable)
		assert.Equal(t, "Amt", got.Mapping["amount"])
	})

	t.Run("missing headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/templates/detect", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
