package restore

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"inventory-vault/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	svc := testService(t, 0)
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

func postRestore(t *testing.T, app *fiber.App, req RestoreRequest) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest("POST", "/restore/", bytes.NewReader(payload))
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(httpReq)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandlePlan(t *testing.T) {
	app, _ := testApp(t)

	t.Run("Preview", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/restore/"+testDay+"/"+testStamp+"/plan?collection=equipment", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var preview reconcile.Preview
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&preview))
		assert.Equal(t, "id", preview.Identifier)
		assert.Equal(t, 1, preview.Summary.Inserts)
		assert.Equal(t, 1, preview.Summary.Updates)
	})

	t.Run("InvalidDay", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/restore/someday/"+testStamp+"/plan?collection=equipment", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("MissingCollection", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/restore/"+testDay+"/"+testStamp+"/plan", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("UnknownSnapshot", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/restore/"+testDay+"/19700101_000000/plan?collection=equipment", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestHandleRestore(t *testing.T) {
	app, _ := testApp(t)

	t.Run("DryRun", func(t *testing.T) {
		status, body := postRestore(t, app, RestoreRequest{
			Day: testDay, Stamp: testStamp, Collection: "equipment",
			Confirm: true, DryRun: true,
		})
		assert.Equal(t, 200, status)
		assert.Equal(t, ModeSmartMerge, body["mode"])
		assert.Equal(t, false, body["applied"])
	})

	t.Run("Confirmed", func(t *testing.T) {
		status, body := postRestore(t, app, RestoreRequest{
			Day: testDay, Stamp: testStamp, Collection: "equipment",
			Mode: ModeSmartMerge, Confirm: true,
		})
		assert.Equal(t, 200, status)
		assert.Equal(t, true, body["applied"])

		report := body["report"].(map[string]any)
		result := report["result"].(map[string]any)
		assert.Equal(t, float64(1), result["inserted"])
		assert.Equal(t, float64(1), result["updated"])
	})

	t.Run("UnknownMode", func(t *testing.T) {
		status, _ := postRestore(t, app, RestoreRequest{
			Day: testDay, Stamp: testStamp, Collection: "equipment", Mode: "truncate",
		})
		assert.Equal(t, 400, status)
	})

	t.Run("MissingFields", func(t *testing.T) {
		status, _ := postRestore(t, app, RestoreRequest{Day: testDay})
		assert.Equal(t, 400, status)
	})

	t.Run("UnknownSnapshot", func(t *testing.T) {
		status, _ := postRestore(t, app, RestoreRequest{
			Day: testDay, Stamp: "19700101_000000", Collection: "equipment",
		})
		assert.Equal(t, 404, status)
	})
}

func TestHandleRestoreReplace(t *testing.T) {
	app, _ := testApp(t)

	status, body := postRestore(t, app, RestoreRequest{
		Day: testDay, Stamp: testStamp, Collection: "equipment",
		Mode: ModeReplace, Confirm: true,
	})
	assert.Equal(t, 200, status)
	assert.Equal(t, ModeReplace, body["mode"])

	report := body["report"].(map[string]any)
	assert.Equal(t, float64(2), report["deleted"])
	assert.Equal(t, float64(3), report["inserted"])
}

func TestHandleDuplicates(t *testing.T) {
	app, svc := testApp(t)
	require.NoError(t, svc.db.Exec(`INSERT INTO equipment VALUES ('eq-2', 'Monitor B', 4)`).Error)

	t.Run("Report", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/restore/duplicates?collection=equipment", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var report DuplicatesReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		require.Len(t, report.Groups, 1)
		assert.Equal(t, "eq-2", report.Groups[0].Key)
	})

	t.Run("MissingCollection", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/restore/duplicates", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}
