package charting

import "math"

// LinearScale maps a numeric domain onto a pixel range.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinearScale creates a linear scale
func NewLinearScale(domain, rng [2]float64) LinearScale {
	return LinearScale{Domain: domain, Range: rng}
}

// Map converts a domain value to a range value. A degenerate domain
// (both ends equal) maps everything to Range[0].
func (s LinearScale) Map(v float64) float64 {
	span := s.Domain[1] - s.Domain[0]
	if span == 0 {
		return s.Range[0]
	}
	t := (v - s.Domain[0]) / span
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// BandScale maps ordered categorical labels to contiguous pixel bands.
type BandScale struct {
	Labels       []string
	Start        float64
	Stop         float64
	PaddingInner float64
	PaddingOuter float64
	Align        float64
	Round        bool

	step      float64
	bandwidth float64
	offsets   map[string]float64
}

// NewBandScale builds a rounded band scale spanning [0, width] with the
// given alignment and no padding.
func NewBandScale(labels []string, width, align float64) *BandScale {
	s := &BandScale{
		Labels: labels,
		Stop:   width,
		Align:  align,
		Round:  true,
	}
	s.rescale()
	return s
}

func (s *BandScale) rescale() {
	n := float64(len(s.Labels))
	start, stop := s.Start, s.Stop
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := (stop - start) / math.Max(1, n-s.PaddingInner+s.PaddingOuter*2)
	if s.Round {
		step = math.Floor(step)
	}
	start += (stop - start - step*(n-s.PaddingInner)) * s.Align
	bandwidth := step * (1 - s.PaddingInner)
	if s.Round {
		start = math.Round(start)
		bandwidth = math.Round(bandwidth)
	}

	s.step = step
	s.bandwidth = bandwidth
	s.offsets = make(map[string]float64, len(s.Labels))
	for i, label := range s.Labels {
		idx := i
		if reverse {
			idx = len(s.Labels) - 1 - i
		}
		s.offsets[label] = start + step*float64(idx)
	}
}

// Position returns the start offset of a label's band
func (s *BandScale) Position(label string) (float64, bool) {
	v, ok := s.offsets[label]
	return v, ok
}

func (s *BandScale) Step() float64 { return s.step }

func (s *BandScale) Bandwidth() float64 { return s.bandwidth }
