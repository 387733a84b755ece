// Package starcsv reads the input star list and writes the result table.
package starcsv

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Star is one input row: a display name and the ordered list of candidate
// names to try against the catalogues.
type Star struct {
	Name       string
	Candidates []string
}

// candidate columns of the input list, in resolution order.
var inputColumns = []string{"name_input", "name_resolved", "name_alt1"}

// ReadStars parses the input star list. The header must contain at least
// name_input; name_resolved and name_alt1 are optional extra candidates.
// Rows without any candidate name are skipped.
func ReadStars(r io.Reader) ([]Star, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read header")
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	if _, ok := idx[inputColumns[0]]; !ok {
		return nil, errors.Errorf("input list is missing the %s column", inputColumns[0])
	}

	var stars []Star
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "unable to read row")
		}

		var candidates []string
		for _, col := range inputColumns {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				continue
			}
			name := strings.TrimSpace(row[i])
			if name == "" {
				continue
			}
			candidates = append(candidates, name)
		}
		if len(candidates) == 0 {
			continue
		}

		stars = append(stars, Star{Name: candidates[0], Candidates: candidates})
	}

	return stars, nil
}
