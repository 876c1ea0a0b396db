package monitoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
)

func TestMonitor_Finish(t *testing.T) {
	tests := []struct {
		name      string
		layer     string
		err       error
		wantLogs  int
		wantLevel string
	}{
		{name: "service success is logged", layer: LayerService, wantLogs: 1, wantLevel: "info"},
		{name: "repository success is silent", layer: LayerRepository, wantLogs: 0},
		{name: "repository error is logged", layer: LayerRepository, err: assert.AnError, wantLogs: 1, wantLevel: "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			t.Cleanup(xlog.Replace(zap.New(core)))

			m := New(context.Background(), WithLayer(tt.layer), WithSegmentName("ledger.test"))
			m.Finish(WithFinishCheckError(tt.err), WithFinishXlogFields(xlog.String("k", "v")))

			entries := logs.AllUntimed()
			assert.Len(t, entries, tt.wantLogs)
			if tt.wantLogs > 0 {
				assert.Equal(t, tt.wantLevel, entries[0].Level.String())
				assert.Equal(t, messagePrefix[tt.layer], entries[0].Message)
				assert.Equal(t, "v", entries[0].ContextMap()["k"])
			}
		})
	}
}

func TestNew_DetectsLayerFromCaller(t *testing.T) {
	m := New(context.Background())
	assert.Equal(t, LayerUnknown, m.layer)
	assert.Equal(t, "monitoring.TestNew_DetectsLayerFromCaller", m.segmentName)
}

func TestStartBackground_NilApp(t *testing.T) {
	ctx := context.Background()
	got, end := StartBackground(ctx, nil, "task")
	assert.Equal(t, ctx, got)
	assert.NotPanics(t, func() { end(assert.AnError) })
}
