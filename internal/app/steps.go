package app

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-starcolor/internal/catalog"
	"github.com/askiada/go-starcolor/internal/photometry"
)

func (r *runner) progress(it *item) *zap.Logger {
	return r.logger.With(
		zap.Int("index", it.idx),
		zap.Int("total", it.total),
		zap.String("star", it.star.Name),
	)
}

// resolve queries the catalogue cascade. A star that cannot be resolved is
// marked and passed on; only pipeline cancellation stops the run here. A
// per-request timeout also surfaces as context.DeadlineExceeded, so the
// pipeline context is what decides, never the error identity.
func (r *runner) resolve(ctx context.Context, it *item) (*item, error) {
	res, err := r.resolver.Resolve(ctx, it.star.Candidates)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		it.rec.Status = photometry.StatusNotFound
		r.progress(it).Warn("no usable photometry found")
	case err != nil:
		it.rec.Status = photometry.StatusError
		r.progress(it).Warn("catalogue query failed", zap.Error(err))
	default:
		it.rec.Resolved = res.Resolved
		it.rec.Source = res.Source
		it.rec.V = res.V
		it.rec.BV = res.BV
		it.rec.UB = res.UB
		r.progress(it).Debug("resolved",
			zap.String("via", res.Resolved),
			zap.String("source", res.Source),
		)
	}

	return it, nil
}

// estimate computes the effective temperature for rows that resolved.
func (r *runner) estimate(_ context.Context, it *item) (*item, error) {
	if it.rec.Status != "" {
		return it, nil
	}

	teff, err := photometry.BVToTemperature(*it.rec.BV)
	if err != nil {
		it.rec.Status = photometry.StatusError
		r.progress(it).Warn("temperature estimation failed", zap.Error(err))

		return it, nil
	}
	it.rec.TeffK = &teff

	return it, nil
}

// colorize derives the display colour and settles the row status.
func (r *runner) colorize(_ context.Context, it *item) (*item, error) {
	if it.rec.Status != "" {
		return it, nil
	}

	rgb, hex, err := photometry.TemperatureToRGB(*it.rec.TeffK)
	if err != nil {
		it.rec.Status = photometry.StatusError
		r.progress(it).Warn("colour mapping failed", zap.Error(err))

		return it, nil
	}
	it.rec.RGB = &rgb
	it.rec.Hex = hex
	it.rec.Status = photometry.StatusOK
	r.progress(it).Info("star processed",
		zap.String("source", it.rec.Source),
		zap.Float64p("teff_k", it.rec.TeffK),
		zap.String("hex", hex),
	)

	return it, nil
}
