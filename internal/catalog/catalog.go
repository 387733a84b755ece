// Package catalog resolves UBV photometry for star names against remote
// catalogue services. Sources are tried in a fixed cascade; the first one
// returning a usable B-V colour index wins. Access is sequential and blocking,
// one request at a time, with no retries.
package catalog

import "github.com/pkg/errors"

// Photometry is the set of magnitudes a source can return. B-V is the only
// field a source must provide; V and U-B stay nil when unavailable.
type Photometry struct {
	V  *float64
	BV *float64
	UB *float64
}

// Result is a successful resolution: the photometry, the candidate name that
// matched and the source that answered.
type Result struct {
	Photometry
	Resolved string
	Source   string
}

// Source describes one VizieR catalogue of the cascade.
type Source struct {
	// Name is the human-readable catalogue name used in logs and output.
	Name string `yaml:"name"`
	// ID is the VizieR catalogue identifier, e.g. "II/215".
	ID string `yaml:"id"`
	// Columns are the table columns requested from the service.
	Columns []string `yaml:"columns"`
	// Tycho marks catalogues exposing BT/VT magnitudes instead of B-V;
	// the colour index is then derived as BT-VT and V as VT.
	Tycho bool `yaml:"tycho"`
}

// ErrNotFound reports that no source of the cascade returned usable
// photometry for any candidate name.
var ErrNotFound = errors.New("star not found in any catalogue")

// errNoPhotometry is the internal miss marker for a single source/name pair.
var errNoPhotometry = errors.New("no usable photometry")

func float(v float64) *float64 {
	return &v
}
