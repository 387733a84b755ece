package catalog

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
)

const simbadSourceName = "SIMBAD"

// querySimbad is the last resort of the cascade. It runs a sim-script query
// asking for the U, B and V fluxes of the object and derives the colour
// indices from them.
func (c *Client) querySimbad(ctx context.Context, object string) (*Photometry, error) {
	script := fmt.Sprintf(
		"output console=off script=off\nformat object \"U=%%FLUXLIST(U;F) B=%%FLUXLIST(B;F) V=%%FLUXLIST(V;F)\"\nquery id %s\n",
		object,
	)

	values := url.Values{}
	values.Set("script", script)

	body, err := c.get(ctx, c.simbadURL, "simbad/sim-script", values)
	if err != nil {
		return nil, err
	}

	if bytes.Contains(body, []byte("::error::")) {
		return nil, errNoPhotometry
	}

	fluxes := parseSimbadFluxes(body)
	bmag, okB := fluxes["B"]
	vmag, okV := fluxes["V"]
	if !okB || !okV {
		return nil, errNoPhotometry
	}

	ph := &Photometry{V: float(vmag), BV: float(bmag - vmag)}
	if umag, okU := fluxes["U"]; okU {
		ph.UB = float(umag - bmag)
	}

	return ph, nil
}

// parseSimbadFluxes scans the script output for "U=... B=... V=..." tokens.
// Missing fluxes render as empty values and are skipped.
func parseSimbadFluxes(body []byte) map[string]float64 {
	fluxes := make(map[string]float64, 3)

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		for _, token := range strings.Fields(scanner.Text()) {
			band, value, ok := strings.Cut(token, "=")
			if !ok {
				continue
			}
			mag := parseMag(value)
			if mag == nil {
				continue
			}
			fluxes[band] = *mag
		}
	}

	return fluxes
}
