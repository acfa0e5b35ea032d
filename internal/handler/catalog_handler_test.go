package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmednasr/repo-tools/internal/models"
	"github.com/ahmednasr/repo-tools/internal/service"
	"github.com/ahmednasr/repo-tools/internal/tools"
)

func getJSON(t *testing.T, app *fiber.App, path string, v interface{}) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestCatalogHandler(t *testing.T) {
	catalog := tools.Catalog{
		{Name: models.ToolFetchMetadata, Description: "metadata", Output: tools.OutputJSON, ReadOnly: true},
		{Name: models.ToolFetchReadme, Description: "readme", Output: tools.OutputText, ReadOnly: true},
	}
	app := newTestApp(&fakeAskService{}, catalog, service.NewHistoryService(nil))

	var body struct {
		Tools []tools.Definition `json:"tools"`
	}
	status := getJSON(t, app, "/api/v1/tools", &body)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Tools, 2)
	assert.Equal(t, models.ToolFetchMetadata, body.Tools[0].Name)
	assert.Equal(t, tools.OutputText, body.Tools[1].Output)
	assert.True(t, body.Tools[1].ReadOnly)
}

type fakeHistory struct {
	repos []models.RecentRepo
	err   error
	limit int
}

func (f *fakeHistory) Record(ctx context.Context, repo models.RepoRef) {}

func (f *fakeHistory) Recent(ctx context.Context, limit int) ([]models.RecentRepo, error) {
	f.limit = limit
	return f.repos, f.err
}

func TestHistoryHandler(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{repos: []models.RecentRepo{
		{ID: "octo/demo", Owner: "octo", Name: "demo", QueryCount: 3, LastQueriedAt: at},
	}}
	app := newTestApp(&fakeAskService{}, nil, history)

	var repos []models.RecentRepo
	status := getJSON(t, app, "/api/v1/repos/recent?limit=5", &repos)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5, history.limit)
	require.Len(t, repos, 1)
	assert.Equal(t, "octo/demo", repos[0].ID)
	assert.Equal(t, 3, repos[0].QueryCount)

	getJSON(t, app, "/api/v1/repos/recent", &repos)
	assert.Equal(t, service.DefaultRecentLimit, history.limit)
}

func TestHistoryHandler_NoStore(t *testing.T) {
	app := newTestApp(&fakeAskService{}, nil, service.NewHistoryService(nil))

	var repos []models.RecentRepo
	status := getJSON(t, app, "/api/v1/repos/recent", &repos)
	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, repos)
	assert.Empty(t, repos)
}

func TestHistoryHandler_StoreError(t *testing.T) {
	app := newTestApp(&fakeAskService{}, nil, &fakeHistory{err: errors.New("db down")})

	var body models.ErrorResponse
	status := getJSON(t, app, "/api/v1/repos/recent", &body)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to load recent repositories", body.Error)
}
