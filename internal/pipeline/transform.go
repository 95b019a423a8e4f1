package pipeline

import (
	"context"
	"log/slog"

	"github.com/agroclim/et0-service/internal/domain"
)

// ET0Transformer implements Transformer: it parses a raw observation record,
// validates it, and runs the Penman-Monteith computation.
type ET0Transformer struct {
	logger *slog.Logger
}

// NewTransformer creates an ET0Transformer.
func NewTransformer(logger *slog.Logger) *ET0Transformer {
	return &ET0Transformer{logger: logger}
}

func (t *ET0Transformer) Transform(_ context.Context, raw domain.RawEvent) (domain.ET0Result, error) {
	obs, rec, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.ET0Result{}, err
	}
	if err := domain.Validate(obs); err != nil {
		return domain.ET0Result{}, err
	}

	result, err := domain.ComputeET0(obs)
	if err != nil {
		return domain.ET0Result{}, err
	}
	result.Source = rec
	return result, nil
}
