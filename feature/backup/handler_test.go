package backup

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	svc := testService(t, testDB(t))
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

func TestHandleCreate(t *testing.T) {
	app, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/backups/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "created", body["status"])

	t.Run("SecondRunSkipped", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/backups/", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "skipped", body["status"])
	})

	t.Run("ForcedRunCreates", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/backups/?force=true", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "created", body["status"])
	})
}

func TestHandleList(t *testing.T) {
	app, svc := testApp(t)
	desc, err := svc.Create(context.Background(), true)
	require.NoError(t, err)

	t.Run("Grouped", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/backups/", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var groups []DayGroup
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&groups))
		require.Len(t, groups, 1)
		assert.Equal(t, desc.DayOfWeek, groups[0].Day)
	})

	t.Run("SingleDay", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/backups/"+desc.DayOfWeek, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("InvalidDay", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/backups/someday", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandleVerifyAndPreview(t *testing.T) {
	app, svc := testApp(t)
	desc, err := svc.Create(context.Background(), true)
	require.NoError(t, err)

	t.Run("Verify", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/backups/"+desc.DayOfWeek+"/"+desc.Stamp+"/verify", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), `"ok":true`)
	})

	t.Run("VerifyMissing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/backups/"+desc.DayOfWeek+"/19700101_000000/verify", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Preview", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/backups/"+desc.DayOfWeek+"/"+desc.Stamp+"/preview?collection=equipment&limit=1", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var preview SnapshotPreview
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&preview))
		assert.Equal(t, 2, preview.Records)
		assert.Len(t, preview.Rows, 1)
	})

	t.Run("PreviewWithoutCollection", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/backups/"+desc.DayOfWeek+"/"+desc.Stamp+"/preview", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandleCompareValidation(t *testing.T) {
	app, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/backups/monday/compare", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandlePrune(t *testing.T) {
	app, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/backups/expired", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "pruned", body["status"])
	assert.Equal(t, float64(0), body["removed"])
}
