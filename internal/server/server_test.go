package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/dataview-cli/internal/palette"
	"github.com/KaramelBytes/dataview-cli/internal/pipeline"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	return New(pipeline.New(pipeline.Config{Palette: palette.DefaultConfig()}), Config{})
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestHealthz(t *testing.T) {
	resp, body := do(t, newApp(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	_, err := uuid.Parse(resp.Header.Get(HeaderRequestID))
	assert.NoError(t, err)
}

func TestRequestIDIsEchoed(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	resp, err := newApp(t).Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, id, resp.Header.Get(HeaderRequestID))
}

func TestRender_Stats(t *testing.T) {
	resp, body := do(t, newApp(t), http.MethodPost, "/api/v1/render", fiber.Map{
		"text":      "country,gdp\nUS,100\nUK,text",
		"delimiter": ",",
		"view":      "stats",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "stats", body["view"])
	assert.Equal(t, "stats", body["kind"])

	stats, ok := body["stats"].(map[string]any)
	require.True(t, ok)
	cards, ok := stats["cards"].([]any)
	require.True(t, ok)
	require.Len(t, cards, 2)
	first := cards[0].(map[string]any)
	assert.Equal(t, "US", first["label"])
	assert.EqualValues(t, 100, first["primary"])
}

func TestRender_DefaultsAndOptions(t *testing.T) {
	resp, body := do(t, newApp(t), http.MethodPost, "/api/v1/render", fiber.Map{
		"text":    "year;a;b\n2020;1;2",
		"options": fiber.Map{"statColumns": 9, "title": "Sales"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bar", body["view"])
	assert.Equal(t, "Sales", body["meta"].(map[string]any)["title"])

	warnings, ok := body["warnings"].([]any)
	require.True(t, ok)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "statColumns")
}

func TestRender_InvalidView(t *testing.T) {
	resp, body := do(t, newApp(t), http.MethodPost, "/api/v1/render", fiber.Map{
		"text": "a;b\n1;2",
		"view": "radar",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, CodeInvalidRequest, body["code"])

	violations, ok := body["violations"].([]any)
	require.True(t, ok)
	require.Len(t, violations, 1)
	v := violations[0].(map[string]any)
	assert.Equal(t, "View", v["field"])
	assert.Equal(t, "viewtype", v["tag"])
}

func TestRender_InvalidDelimiter(t *testing.T) {
	resp, body := do(t, newApp(t), http.MethodPost, "/api/v1/render", fiber.Map{
		"text":      "a;b\n1;2",
		"delimiter": "#",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, CodeInvalidRequest, body["code"])
}

func TestRender_MalformedText(t *testing.T) {
	resp, body := do(t, newApp(t), http.MethodPost, "/api/v1/render", fiber.Map{
		"text": "a;b\n\"x;1",
		"view": "table",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, CodeInvalidCSV, body["code"])
}

func TestRender_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/render", bytes.NewReader([]byte("{not json")))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := newApp(t).Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRender_SearchableTable(t *testing.T) {
	resp, body := do(t, newApp(t), http.MethodPost, "/api/v1/render", fiber.Map{
		"text":   "country;capital\nFrance;Paris\nSpain;Madrid",
		"view":   "searchabletable",
		"search": "MAD",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	table := body["table"].(map[string]any)
	assert.EqualValues(t, 1, table["matched"])
	assert.EqualValues(t, 2, table["total"])
	assert.Len(t, table["rows"], 1)
}

func TestFilter(t *testing.T) {
	resp, body := do(t, newApp(t), http.MethodPost, "/api/v1/filter", fiber.Map{
		"text":      "country,capital\nFrance,Paris\nSpain,Madrid",
		"delimiter": "comma",
		"search":    "zzz",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["matched"])
	assert.EqualValues(t, 2, body["total"])
	assert.Len(t, body["headers"], 2)
}

func TestPalette(t *testing.T) {
	app := newApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/v1/palette?count=8", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	colours := body["colours"].([]any)
	require.Len(t, colours, 8)
	assert.Equal(t, palette.DefaultGraph[0], colours[0])
	assert.Equal(t, palette.Generate(6), colours[6])
	assert.Equal(t, "graph", body["kind"])

	_, body = do(t, app, http.MethodGet, "/api/v1/palette?pie=true&count=2", nil)
	assert.Equal(t, "pie", body["kind"])
	assert.Equal(t, []any{palette.DefaultPie[0], palette.DefaultPie[1]}, body["colours"])

	resp, _ = do(t, app, http.MethodGet, "/api/v1/palette?count=-1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, http.MethodGet, "/api/v1/palette?shuffle=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, CodeInvalidRequest, body["code"])
}

func TestViews(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/views", nil)
	resp, err := newApp(t).Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var views []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	assert.Len(t, views, 12)
	assert.Equal(t, "bar", views[0]["type"])
}

func TestNotFound(t *testing.T) {
	resp, body := do(t, newApp(t), http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, CodeNotFound, body["code"])
}

func TestMetrics(t *testing.T) {
	app := newApp(t)
	do(t, app, http.MethodGet, "/healthz", nil)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorIsImmutable(t *testing.T) {
	changed := ErrInvalidReq.Msg("%s", "changed")
	assert.NotEqual(t, "changed", ErrInvalidReq.Message)
	assert.Equal(t, "changed", changed.Message)
	assert.Equal(t, ErrInvalidReq.Code, changed.Code)

	withV := ErrInvalidReq.WithViolations([]Violation{{Field: "View", Tag: "viewtype"}})
	assert.Empty(t, ErrInvalidReq.Violations)
	assert.Len(t, withV.Violations, 1)
	assert.NotSame(t, ErrInvalidReq, withV)
}
