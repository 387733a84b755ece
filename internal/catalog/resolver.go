package catalog

import (
	"context"

	"github.com/pkg/errors"
)

// Resolver runs the catalogue cascade for one star at a time.
type Resolver struct {
	client    *Client
	sources   []Source
	useSimbad bool
}

// NewResolver creates a resolver trying the given VizieR sources in order,
// optionally falling back to SIMBAD fluxes when none of them answers.
func NewResolver(client *Client, sources []Source, useSimbad bool) *Resolver {
	return &Resolver{
		client:    client,
		sources:   sources,
		useSimbad: useSimbad,
	}
}

// Resolve tries every candidate name of a star against every source of the
// cascade. A source miss moves on to the next pair; a transport or decode
// failure aborts the cascade, the caller decides what to do with the row.
func (r *Resolver) Resolve(ctx context.Context, candidates []string) (*Result, error) {
	if len(candidates) == 0 {
		return nil, errors.New("at least one candidate name is required")
	}

	for _, src := range r.sources {
		for _, name := range candidates {
			ph, err := r.client.queryVizier(ctx, src, name)
			if errors.Is(err, errNoPhotometry) {
				continue
			}
			if err != nil {
				return nil, errors.Wrapf(err, "querying %s for %q", src.Name, name)
			}

			return &Result{Photometry: *ph, Resolved: name, Source: src.Name}, nil
		}
	}

	if r.useSimbad {
		for _, name := range candidates {
			ph, err := r.client.querySimbad(ctx, name)
			if errors.Is(err, errNoPhotometry) {
				continue
			}
			if err != nil {
				return nil, errors.Wrapf(err, "querying %s for %q", simbadSourceName, name)
			}

			return &Result{Photometry: *ph, Resolved: name, Source: simbadSourceName}, nil
		}
	}

	return nil, ErrNotFound
}
