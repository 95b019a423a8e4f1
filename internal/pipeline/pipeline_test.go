package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agroclim/et0-service/internal/domain"
	"github.com/agroclim/et0-service/internal/observability"
	"github.com/agroclim/et0-service/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	batches [][]domain.RawEvent
	index   atomic.Int64
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, _ int) ([]domain.RawEvent, error) {
	i := int(m.index.Add(1) - 1)
	if i >= len(m.batches) {
		// block until context cancelled to simulate waiting for messages
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.batches[i], nil
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.ET0Result, error) {
	if m.err != nil {
		return domain.ET0Result{}, m.err
	}
	return pipeline.NewTransformer(slog.Default()).Transform(ctx, raw)
}

type mockLoader struct {
	loaded []domain.ET0Result
	err    error
}

func (m *mockLoader) LoadBatch(_ context.Context, results []domain.ET0Result) error {
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, results...)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	raw := makeRawEvent(t, uccleObservation())

	ext := &mockExtractor{batches: [][]domain.RawEvent{{raw}}}
	tfm := pipeline.NewTransformer(slog.Default())
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	require.Len(t, ldr.loaded, 1)
	assert.Equal(t, 187, ldr.loaded[0].DayOfYear)
	assert.InDelta(t, 3.97, ldr.loaded[0].ET0, 0.01)
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{} // no batches, will block
	tfm := &mockTransformer{}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_TransformErrorSkipsRecord(t *testing.T) {
	commits := 0
	bad := makeRawEvent(t, uccleObservation())
	bad.Commit = func(_ context.Context) error {
		commits++
		return nil
	}

	ext := &mockExtractor{batches: [][]domain.RawEvent{{bad}}}
	tfm := &mockTransformer{err: &domain.ValidationError{Field: "latitude", Constraint: "must be <= 90"}}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
	// Rejected records are still committed so they are not re-delivered.
	assert.Equal(t, 1, commits)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_PoisonRecordDoesNotBlockBatch(t *testing.T) {
	poison := domain.RawEvent{Value: []byte("not json")}
	good := makeRawEvent(t, uccleObservation())

	ext := &mockExtractor{batches: [][]domain.RawEvent{{poison, good}}}
	tfm := pipeline.NewTransformer(slog.Default())
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	require.Len(t, ldr.loaded, 1)
	assert.Equal(t, 187, ldr.loaded[0].DayOfYear)
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	commitCalled := false

	raw := makeRawEvent(t, uccleObservation())
	raw.Topic = "raw-daily-observations"
	raw.Commit = func(_ context.Context) error {
		commitCalled = true
		return nil
	}

	ext := &mockExtractor{batches: [][]domain.RawEvent{{raw}}}
	tfm := pipeline.NewTransformer(slog.Default())
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, commitCalled)
}

func TestPipeline_Run_LoaderErrorRetriesWithBackoff(t *testing.T) {
	raw := makeRawEvent(t, uccleObservation())

	ext := &mockExtractor{batches: [][]domain.RawEvent{{raw}, {raw}}}
	tfm := pipeline.NewTransformer(slog.Default())
	ldr := &mockLoader{err: errors.New("broker unavailable")}
	metrics := newTestMetrics()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 700*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestET0Transformer_Transform(t *testing.T) {
	raw := makeRawEvent(t, uccleObservation())

	tfm := pipeline.NewTransformer(slog.Default())
	result, err := tfm.Transform(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 187, result.DayOfYear)
	assert.InDelta(t, 50.80, result.Latitude, 1e-9)
	assert.InDelta(t, 3.9748269207, result.ET0, 1e-6)
	assert.Equal(t, "12.3", result.Source.TempMin)
}

func TestET0Transformer_Transform_OutOfRange(t *testing.T) {
	rec := uccleObservation()
	rec.RHMax = "140"
	raw := makeRawEvent(t, rec)

	tfm := pipeline.NewTransformer(slog.Default())
	_, err := tfm.Transform(context.Background(), raw)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "humidity_max", verr.Field)
}

func TestET0Transformer_Transform_BadPayload(t *testing.T) {
	tfm := pipeline.NewTransformer(slog.Default())
	_, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte("not json")})
	assert.Error(t, err)
}

// --- helpers ---

func uccleObservation() domain.RawObservation {
	return domain.RawObservation{
		Lat:      "50.80",
		TempMin:  "12.3",
		TempMax:  "21.5",
		TempMean: "16.9",
		RHMin:    "63",
		RHMax:    "84",
		Wind:     "2.78",
		Sunshine: "9.25",
		DOY:      "187",
		Altitude: "100",
	}
}

func makeRawEvent(t *testing.T, rec domain.RawObservation) domain.RawEvent {
	t.Helper()
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	return domain.RawEvent{
		Key:   []byte(rec.DOY),
		Value: data,
	}
}
