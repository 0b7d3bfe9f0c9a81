package scanner

import (
	m "github.com/mouse-blink/predeploy/internal/model"
)

// Overlay replaces whatever the scan found inside region with a single
// Protected span. Spans straddling a region boundary are trimmed, so the
// result stays contiguous. An empty region returns spans unchanged.
func Overlay(spans []m.Span, region m.Span) []m.Span {
	if region.Len() <= 0 {
		return spans
	}

	out := make([]m.Span, 0, len(spans)+2)
	inserted := false

	for _, sp := range spans {
		if sp.End <= region.Start || sp.Start >= region.End {
			if !inserted && sp.Start >= region.End {
				out = append(out, m.Span{Start: region.Start, End: region.End, Mode: m.Protected})
				inserted = true
			}

			out = append(out, sp)

			continue
		}

		if sp.Start < region.Start {
			out = append(out, m.Span{Start: sp.Start, End: region.Start, Mode: sp.Mode})
		}

		if !inserted {
			out = append(out, m.Span{Start: region.Start, End: region.End, Mode: m.Protected})
			inserted = true
		}

		if sp.End > region.End {
			out = append(out, m.Span{Start: region.End, End: sp.End, Mode: sp.Mode})
		}
	}

	if !inserted {
		out = append(out, m.Span{Start: region.Start, End: region.End, Mode: m.Protected})
	}

	return out
}

// Count tallies spans per mode.
func Count(spans []m.Span) map[m.Mode]int {
	counts := make(map[m.Mode]int)
	for _, sp := range spans {
		counts[sp.Mode]++
	}

	return counts
}
