package httpapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gearhartlove/pregel-ex/core"
	"github.com/Gearhartlove/pregel-ex/httpapi"
	"github.com/Gearhartlove/pregel-ex/payload"
	"github.com/Gearhartlove/pregel-ex/registry"
	"github.com/stretchr/testify/require"
)

func TestListGraphs_Empty(t *testing.T) {
	r := registry.New()
	app := httpapi.New(r)

	req := httptest.NewRequest(http.MethodGet, "/graphs", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	require.Empty(t, out)
}

func TestGetFinalValue_AfterRun(t *testing.T) {
	r := registry.New()
	g, err := r.CreateGraph("demo")
	require.NoError(t, err)
	start, err := r.CreateVertex(g.ID(), "start", func(ctx core.ComputeContext) (core.Result, error) {
		return core.NewValue(payload.Number(7)), nil
	}, core.WithVertexType(core.Source))
	require.NoError(t, err)
	end, err := r.CreateVertex(g.ID(), "end", func(ctx core.ComputeContext) (core.Result, error) {
		return core.NewValue(ctx.AggregatedMessages), nil
	}, core.WithVertexType(core.Final))
	require.NoError(t, err)
	require.NoError(t, r.CreateEdge(g.ID(), start.ID(), end.ID()))

	app := httpapi.New(r)
	runReq := httptest.NewRequest(http.MethodPost, "/graphs/"+g.ID()+"/run", nil)
	resp, err := app.Test(runReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	finalReq := httptest.NewRequest(http.MethodGet, "/graphs/"+g.ID()+"/final", nil)
	resp, err = app.Test(finalReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, float64(7), out["value"])
}

func TestGetVertexState_NotFound(t *testing.T) {
	r := registry.New()
	app := httpapi.New(r)

	req := httptest.NewRequest(http.MethodGet, "/graphs/ghost/vertices/ghost", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
