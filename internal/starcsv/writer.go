package starcsv

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/askiada/go-starcolor/internal/photometry"
)

var outputHeader = []string{
	"name", "resolved", "V", "B-V", "U-B", "Teff_K", "R", "G", "B", "hex", "source", "status",
}

// Writer serialises star records to the output CSV. Derived fields that stayed
// nil render as empty cells.
type Writer struct {
	cw *csv.Writer
}

// NewWriter creates a writer and emits the header row.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	err := cw.Write(outputHeader)
	if err != nil {
		return nil, errors.Wrap(err, "unable to write header")
	}

	return &Writer{cw: cw}, nil
}

// Write appends one record to the table.
func (w *Writer) Write(rec *photometry.StarRecord) error {
	row := []string{
		rec.Name,
		rec.Resolved,
		formatMag(rec.V),
		formatMag(rec.BV),
		formatMag(rec.UB),
		formatTeff(rec.TeffK),
		formatChannel(rec.RGB, func(c photometry.RGB) uint8 { return c.R }),
		formatChannel(rec.RGB, func(c photometry.RGB) uint8 { return c.G }),
		formatChannel(rec.RGB, func(c photometry.RGB) uint8 { return c.B }),
		rec.Hex,
		rec.Source,
		string(rec.Status),
	}

	err := w.cw.Write(row)
	if err != nil {
		return errors.Wrapf(err, "unable to write row for %s", rec.Name)
	}

	return nil
}

// Flush flushes the underlying csv writer and reports any buffered error.
func (w *Writer) Flush() error {
	w.cw.Flush()

	return errors.Wrap(w.cw.Error(), "unable to flush output")
}

func formatMag(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatTeff renders the temperature rounded to whole Kelvin.
func formatTeff(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa(int(math.Round(*v)))
}

func formatChannel(rgb *photometry.RGB, pick func(photometry.RGB) uint8) string {
	if rgb == nil {
		return ""
	}

	return strconv.Itoa(int(pick(*rgb)))
}
