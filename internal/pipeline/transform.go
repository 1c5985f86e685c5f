package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/distance-matrix-service/internal/domain"
)

// LookupTransformer implements Transformer by parsing the request and
// resolving it through a DistanceCalculator.
type LookupTransformer struct {
	calc   domain.DistanceCalculator
	logger *slog.Logger
}

// NewTransformer creates a LookupTransformer backed by calc.
func NewTransformer(calc domain.DistanceCalculator, logger *slog.Logger) *LookupTransformer {
	return &LookupTransformer{
		calc:   calc,
		logger: logger,
	}
}

func (t *LookupTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.LookupResponse, error) {
	req, err := domain.ParseLookupRequest(raw)
	if err != nil {
		return domain.LookupResponse{}, err
	}
	return domain.ResolveLookup(ctx, req, t.calc, t.logger), nil
}
