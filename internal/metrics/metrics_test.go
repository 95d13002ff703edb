package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"voxel-viewer/internal/world"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveWorldTurnsTotalsIntoIncrements(t *testing.T) {
	e := NewExporter()

	e.ObserveWorld(world.Stats{Visible: 10, Total: 40, Capacity: 12, Edits: 3, Rebuilds: 1})
	e.ObserveWorld(world.Stats{Visible: 8, Total: 39, Capacity: 12, Edits: 5, Rebuilds: 1, Desyncs: 1})

	assert.Equal(t, float64(8), testutil.ToFloat64(e.visible))
	assert.Equal(t, float64(39), testutil.ToFloat64(e.total))
	assert.Equal(t, float64(12), testutil.ToFloat64(e.capacity))
	assert.Equal(t, float64(5), testutil.ToFloat64(e.edits))
	assert.Equal(t, float64(1), testutil.ToFloat64(e.rebuilds))
	assert.Equal(t, float64(1), testutil.ToFloat64(e.desyncs))
}

func TestObserveDrawAndFrame(t *testing.T) {
	e := NewExporter()

	e.ObserveDraw(100, true)
	e.ObserveDraw(90, false)
	e.SetFPS(59)
	e.ObserveFrame(12 * time.Millisecond)

	assert.Equal(t, float64(90), testutil.ToFloat64(e.drawn))
	assert.Equal(t, float64(1), testutil.ToFloat64(e.uploads))
	assert.Equal(t, float64(59), testutil.ToFloat64(e.fps))
	assert.Equal(t, 1, testutil.CollectAndCount(e.frameSeconds))
}

func TestHandlerExposesMetrics(t *testing.T) {
	e := NewExporter()
	e.ObserveWorld(world.Stats{Visible: 7})

	srv := httptest.NewServer(e.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "voxel_viewer_world_visible_blocks 7")
	assert.Contains(t, string(body), "voxel_viewer_render_frame_seconds_bucket")
}
