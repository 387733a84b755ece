package photometry

import (
	"math"

	"github.com/pkg/errors"
	colors "gopkg.in/go-playground/colors.v1"
)

// ErrInvalidTemperature reports a temperature outside the domain of the
// colour approximation.
var ErrInvalidTemperature = errors.New("invalid temperature")

// TemperatureToRGB maps a temperature in Kelvin to an approximate blackbody
// display colour. The curve is a piecewise log/power fit on t = Teff/100:
// below 6600 K the red channel saturates, above it the blue channel does.
// The mapping makes no physical accuracy claim; it is deterministic for a
// given temperature.
func TemperatureToRGB(teffK float64) (RGB, string, error) {
	if math.IsNaN(teffK) || math.IsInf(teffK, 0) || teffK <= 0 {
		return RGB{}, "", errors.Wrapf(ErrInvalidTemperature, "Teff=%g", teffK)
	}

	t := teffK / 100.0

	var r, g, b float64
	if t < 66 {
		r = 255
		g = 99.47*math.Log(t) - 161.12
		if t < 19 {
			b = 0
		} else {
			b = 138.51*math.Log(t-10) - 305.04
		}
	} else {
		r = 329.69 * math.Pow(t-60, -0.1332)
		g = 288.12 * math.Pow(t-60, -0.0755)
		b = 255
	}

	rgb := RGB{R: clipChannel(r), G: clipChannel(g), B: clipChannel(b)}

	c, err := colors.RGB(rgb.R, rgb.G, rgb.B)
	if err != nil {
		return RGB{}, "", errors.Wrap(err, "unable to build colour")
	}

	return rgb, c.ToHEX().String(), nil
}

func clipChannel(v float64) uint8 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 255:
		return 255
	default:
		return uint8(math.Round(v))
	}
}
