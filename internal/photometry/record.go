// Package photometry holds the star record model and the two pure
// transformations of the pipeline: colour index to effective temperature and
// effective temperature to an approximate display colour.
package photometry

// Status is the processing outcome of a single star.
type Status string

const (
	StatusOK       Status = "ok"
	StatusError    Status = "error"
	StatusNotFound Status = "not_found"
)

// RGB is an 8-bit colour triple.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// StarRecord is one row of the result table. It is created from an input name
// and populated in place by the pipeline stages; fields stay nil when the
// corresponding stage could not run.
type StarRecord struct {
	Name     string
	Resolved string
	Source   string
	V        *float64
	BV       *float64
	UB       *float64
	TeffK    *float64
	RGB      *RGB
	Hex      string
	Status   Status
}
