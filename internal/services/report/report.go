// Package report renders chart documents for a terminal
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"gymdesk/internal/core/money"
	"gymdesk/internal/services/api/metrics/domain"
)

// Options size the plot
type Options struct {
	Width  int
	Height int
}

const (
	minWidth  = 20
	minHeight = 3
)

// Render plots c inside its suggested scale and appends a bucket legend
func Render(c domain.Chart, opt Options) string {
	if len(c.Data) == 0 {
		return "No data available\n"
	}
	if opt.Width < minWidth {
		opt.Width = minWidth
	}
	if opt.Height < minHeight {
		opt.Height = minHeight
	}

	m, _ := domain.ParseMetric(c.Metric)
	caption := fmt.Sprintf("%s, period %s", c.Metric, c.Period)

	var b strings.Builder
	b.WriteString(asciigraph.Plot(c.Data,
		asciigraph.Height(opt.Height),
		asciigraph.Width(opt.Width),
		asciigraph.LowerBound(c.Scale.Min),
		asciigraph.UpperBound(c.Scale.Max),
		asciigraph.Caption(caption),
	))
	b.WriteString("\n\n")
	for i, l := range c.Labels {
		if i >= len(c.Data) {
			break
		}
		fmt.Fprintf(&b, "%-16s %s\n", l, Value(m.Unit(), c.Data[i]))
	}
	return b.String()
}

// Value formats one sample for its unit
func Value(u domain.Unit, v float64) string {
	switch u {
	case domain.UnitCurrency:
		return money.Peso(v)
	case domain.UnitPercentage:
		return humanize.FormatFloat("#,###.##", v) + "%"
	case domain.UnitDuration:
		return humanize.FormatFloat("#,###.#", v) + " min"
	default:
		return humanize.Commaf(v)
	}
}
