// Package scale suggests chart axis bounds for a metric series
package scale

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
)

// Suggestion is the axis hint handed to chart clients
type Suggestion struct {
	Min float64 `json:"suggestedMin"`
	Max float64 `json:"suggestedMax"`
}

// Empty is returned for series with nothing to plot
var Empty = Suggestion{Min: 0, Max: 10}

const (
	flatPadRatio   = 0.2
	flatPadFloor   = 5
	smallSeriesPad = 0.25
	largeSeriesPad = 0.15
	smallSeriesLen = 10
	highVarRatio   = 0.5
	highVarBoost   = 1.5
	minPadShare    = 0.3
)

// Estimate pads the observed range of series so a chart has some headroom.
// Zeros are treated as missing samples. Max is snapped to a readable boundary;
// it is expected but not guaranteed to be at least the largest sample
func Estimate(series []float64) Suggestion {
	vals := nonZero(series)
	if len(vals) == 0 {
		return Empty
	}

	lo, hi := bounds(vals)
	span := hi - lo

	var min, max float64
	if span == 0 {
		pad := math.Max(hi*flatPadRatio, flatPadFloor)
		min = math.Max(0, lo-pad)
		max = hi + pad
	} else {
		pct := largeSeriesPad
		if len(vals) < smallSeriesLen {
			pct = smallSeriesPad
		}
		pad := span * pct
		if mean, sd := meanStdev(vals); sd > mean*highVarRatio {
			pad *= highVarBoost
		}
		min = math.Max(0, lo-pad*minPadShare)
		max = hi + pad
	}

	return Suggestion{Min: Round2(min), Max: Nice(max)}
}

// Nice rounds v up to a readable axis boundary:
// half steps below 10, fives below 100, otherwise the second significant digit
func Nice(v float64) float64 {
	switch {
	case v <= 0:
		return 0
	case v < 10:
		return math.Ceil(v*2) / 2
	case v < 100:
		return math.Ceil(v/5) * 5
	}
	digits := len(strconv.FormatInt(int64(v), 10))
	step := math.Pow(10, float64(digits-2))
	return math.Ceil(v/step) * step
}

// Round2 rounds half away from zero to 2 decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func nonZero(series []float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if v != 0 && !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func bounds(vals []float64) (lo, hi float64) {
	lo, _ = stats.Min(vals)
	hi, _ = stats.Max(vals)
	return lo, hi
}

// meanStdev returns the mean and sample standard deviation; sd is 0 below two values
func meanStdev(vals []float64) (mean, sd float64) {
	mean, _ = stats.Mean(vals)
	if len(vals) < 2 {
		return mean, 0
	}
	sd, _ = stats.StandardDeviationSample(vals)
	return mean, sd
}
