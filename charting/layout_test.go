package charting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exampleInput = ChartInput{Missing: 5, Partial: 10, Complete: 20, Offline: 0}

func textOf(t *testing.T, s Scene, key string) string {
	t.Helper()
	n, ok := s.Find(key)
	require.True(t, ok, "node %s not found", key)
	return n.Text
}

func keysWithPrefix(s Scene, prefix string) []string {
	var keys []string
	for _, p := range s.Flatten() {
		if strings.HasPrefix(p.Key, prefix) {
			keys = append(keys, strings.TrimPrefix(p.Key, prefix))
		}
	}
	return keys
}

func TestLayoutExampleLTR(t *testing.T) {
	s := Layout(exampleInput, LTR)

	assert.Equal(t, 35, s.Total)
	assert.Equal(t, "0", textOf(t, s, "tick:min"))
	assert.Equal(t, "35", textOf(t, s, "tick:max"))
	assert.Equal(t, []string{"Missing", "Partial", "Complete", "No Signal"}, keysWithPrefix(s, "legend-label:"))
	assert.Equal(t, "· 5", textOf(t, s, "legend-count:Missing"))
	assert.Equal(t, "· 10", textOf(t, s, "legend-count:Partial"))
	assert.Equal(t, "· 20", textOf(t, s, "legend-count:Complete"))
	assert.Equal(t, "· 0", textOf(t, s, "legend-count:No Signal"))
	assert.Equal(t, "Total", textOf(t, s, "total-label"))
	assert.Equal(t, "· 35", textOf(t, s, "total-value"))
	assert.Equal(t, []string{"Missing", "Partial", "Complete", "No Signal"}, keysWithPrefix(s, "bar:"))
	assert.Equal(t, "ltr", s.Direction.String())
}

func TestLayoutGeometryLTR(t *testing.T) {
	s := Layout(exampleInput, LTR)
	placed := map[string]Placed{}
	for _, p := range s.Flatten() {
		placed[p.Key] = p
	}

	for i, label := range []string{"Missing", "Partial", "Complete", "No Signal"} {
		bar := placed["bar:"+label]
		assert.Equal(t, float64(i)*30, bar.AbsX, label)
		assert.Equal(t, 27.0, bar.Width, label)
		assert.InDelta(t, 155, bar.AbsY+bar.Height, 1e-9, "bars sit on the baseline")
	}
	assert.InDelta(t, 20.0/35*145, placed["bar:Complete"].Height, 1e-9)
	assert.Equal(t, "8px sans-serif", placed["bar-label:Missing"].Font)
	assert.Equal(t, 13.5, placed["bar-label:Missing"].AbsX)

	assert.Equal(t, 120.0, placed["tick:min:line"].AbsX)
	assert.Equal(t, 6.0, placed["tick:min:line"].X2)
	assert.Equal(t, 5.0, placed["swatch:Missing"].AbsX)
	assert.Equal(t, 185.0, placed["swatch:Missing"].AbsY)
	assert.Equal(t, 245.0, placed["swatch:No Signal"].AbsY)
	assert.Equal(t, 265.0, placed["total-label"].AbsY)
	assert.Equal(t, 20.0, placed["total-label"].AbsX)
	assert.Equal(t, 100.0, placed["total-value"].AbsX)
}

func TestLayoutConflictFolded(t *testing.T) {
	in := exampleInput
	in.Conflict = 3
	s := Layout(in, LTR)

	assert.Equal(t, 38, s.Total)
	assert.Equal(t, "8", textOf(t, s, "bar-label:Missing"))
	assert.Equal(t, "· 8", textOf(t, s, "legend-count:Missing"))
	assert.Equal(t, "38", textOf(t, s, "tick:max"))
	assert.Equal(t, "· 38", textOf(t, s, "total-value"))
	for _, p := range s.Flatten() {
		assert.NotContains(t, p.Key, "Conflict")
	}
}

func TestLayoutRTLOrder(t *testing.T) {
	s := Layout(exampleInput, RTL)

	assert.Equal(t, []string{"No Signal", "Complete", "Partial", "Missing"}, keysWithPrefix(s, "bar:"))
	assert.Equal(t, "35", textOf(t, s, "tick:max"))
	assert.Equal(t, "· 35", textOf(t, s, "total-value"))
	assert.Equal(t, "rtl", s.Direction.String())
}

func TestLayoutRTLMirrorsLTR(t *testing.T) {
	inputs := []ChartInput{
		exampleInput,
		{Missing: 1, Partial: 0, Complete: 7, Offline: 3, Conflict: 2},
		{},
	}
	for _, in := range inputs {
		ltr := Layout(in, LTR)
		rtl := Layout(in, RTL)
		width := ltr.Width

		mirrored := map[string]Placed{}
		for _, p := range rtl.Flatten() {
			mirrored[p.Key] = p
		}

		ltrPlaced := ltr.Flatten()
		require.Len(t, mirrored, len(ltrPlaced))
		for _, p := range ltrPlaced {
			m, ok := mirrored[p.Key]
			require.True(t, ok, p.Key)

			assert.Equal(t, p.AbsY, m.AbsY, p.Key)
			assert.Equal(t, p.Text, m.Text, p.Key)
			assert.Equal(t, p.Fill, m.Fill, p.Key)

			switch p.Kind {
			case KindRect:
				assert.InDelta(t, width-p.AbsX-p.Width, m.AbsX, 1e-9, p.Key)
				assert.Equal(t, p.Height, m.Height, p.Key)
			case KindLine:
				assert.InDelta(t, width-p.AbsX, m.AbsX, 1e-9, p.Key)
				assert.Equal(t, -p.X2, m.X2, p.Key)
			case KindPath:
				assert.InDelta(t, width-p.AbsX, m.AbsX, 1e-9, p.Key)
			default:
				assert.InDelta(t, width-p.AbsX, m.AbsX, 1e-9, p.Key)
			}
		}
	}
}

func TestLayoutColoursFollowLabels(t *testing.T) {
	want := map[string]string{
		"Missing":   "#dc3545",
		"Partial":   "#ffc107",
		"Complete":  "#007bff",
		"No Signal": "#aaaaaa",
	}
	for _, dir := range []Direction{LTR, RTL} {
		s := Layout(exampleInput, dir)
		for label, color := range want {
			bar, ok := s.Find("bar:" + label)
			require.True(t, ok)
			assert.Equal(t, color, bar.Fill, "%s %s", dir, label)
			swatch, ok := s.Find("swatch:" + label)
			require.True(t, ok)
			assert.Equal(t, color, swatch.Fill, "%s %s", dir, label)
		}
	}
}

func TestLayoutAllZero(t *testing.T) {
	s := Layout(ChartInput{}, LTR)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, "0", textOf(t, s, "tick:min"))
	assert.Equal(t, "0", textOf(t, s, "tick:max"))
	for _, label := range []string{"Missing", "Partial", "Complete", "No Signal"} {
		bar, ok := s.Find("bar:" + label)
		require.True(t, ok)
		assert.Equal(t, 0.0, bar.Height, label)
		assert.Equal(t, 145.0, bar.Y, label)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	assert.Equal(t, Layout(exampleInput, RTL), Layout(exampleInput, RTL))
	assert.Equal(t, Layout(exampleInput, LTR), Layout(exampleInput, LTR))
}

func TestLayoutAxisSide(t *testing.T) {
	ltr, _ := Layout(exampleInput, LTR).Find("axis")
	rtl, _ := Layout(exampleInput, RTL).Find("axis")

	assert.Equal(t, 120.0, ltr.X)
	assert.Equal(t, 40.0, rtl.X)

	ltrDomain, _ := Layout(exampleInput, LTR).Find("axis-domain")
	rtlDomain, _ := Layout(exampleInput, RTL).Find("axis-domain")
	assert.Equal(t, "M6,145.5H0V0.5H6", ltrDomain.D)
	assert.Equal(t, "M-6,145.5H0V0.5H-6", rtlDomain.D)
}
