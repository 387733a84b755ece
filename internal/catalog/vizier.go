package catalog

import (
	"bufio"
	"bytes"
	"context"
	"net/url"
	"strconv"
	"strings"
)

const rowLimit = 200

// queryVizier asks one VizieR catalogue for the photometry of one object and
// returns the first row carrying a usable B-V index.
func (c *Client) queryVizier(ctx context.Context, src Source, object string) (*Photometry, error) {
	values := url.Values{}
	values.Set("-source", src.ID)
	values.Set("-c", object)
	values.Set("-out", strings.Join(src.Columns, ","))
	values.Set("-out.max", strconv.Itoa(rowLimit))

	body, err := c.get(ctx, c.vizierURL, "viz-bin/asu-tsv", values)
	if err != nil {
		return nil, err
	}

	cols, rows := parseASUTSV(body)
	if len(rows) == 0 {
		return nil, errNoPhotometry
	}

	idx := make(map[string]int, len(cols))
	for i, col := range cols {
		idx[col] = i
	}

	for _, row := range rows {
		ph := extractRow(src, idx, row)
		if ph != nil {
			return ph, nil
		}
	}

	return nil, errNoPhotometry
}

// parseASUTSV parses the tab-separated payload of the ASU endpoint: comment
// lines start with '#', the first remaining line names the columns, an
// optional dash ruler follows, then the data rows.
func parseASUTSV(body []byte) (cols []string, rows [][]string) {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if isRuler(line) {
			continue
		}
		fields := strings.Split(line, "\t")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if cols == nil {
			cols = fields

			continue
		}
		rows = append(rows, fields)
	}

	return cols, rows
}

func isRuler(line string) bool {
	seen := false
	for _, r := range line {
		switch r {
		case '-':
			seen = true
		case '\t', ' ':
		default:
			return false
		}
	}

	return seen
}

func extractRow(src Source, idx map[string]int, row []string) *Photometry {
	field := func(name string) *float64 {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return nil
		}

		return parseMag(row[i])
	}

	if src.Tycho {
		bt := field("BTmag")
		vt := field("VTmag")
		if bt == nil || vt == nil {
			return nil
		}

		return &Photometry{V: vt, BV: float(*bt - *vt)}
	}

	bv := field("B-V")
	if bv == nil {
		return nil
	}

	return &Photometry{V: field("Vmag"), BV: bv, UB: field("U-B")}
}

func parseMag(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}

	return float(v)
}
