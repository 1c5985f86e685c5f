package domain

import (
	"context"
	"errors"
	"log/slog"
)

// DistanceCalculator resolves a lookup against the distance matrix service.
type DistanceCalculator interface {
	Distances(ctx context.Context, in LookupInput) ([]DistanceResult, error)
}

// ResolveLookup runs req through calc and always returns a response: failures
// are reported in Status and Error rather than dropped.
func ResolveLookup(ctx context.Context, req LookupRequest, calc DistanceCalculator, logger *slog.Logger) LookupResponse {
	resp := LookupResponse{ID: req.ID}

	results, err := calc.Distances(ctx, req.Input())
	resp.ProcessedAt = clock.Now().UTC()
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			resp.Status = LookupInvalid
		} else {
			resp.Status = LookupFailed
		}
		resp.Error = err.Error()
		logger.Warn("distance lookup failed",
			"lookup_id", req.ID,
			"status", resp.Status,
			"error", err,
		)
		return resp
	}

	resp.Status = LookupOK
	resp.Results = results
	return resp
}
