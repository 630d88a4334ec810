package charting

import (
	"fmt"
	"strconv"
)

// Margins around the plot area
type Margins struct {
	Top, Right, Bottom, Left float64
}

// RenderConfig holds the fixed layout constants
type RenderConfig struct {
	OuterWidth   float64
	OuterHeight  float64
	Margin       Margins
	BarGap       float64
	BandAlign    float64
	LegendOffset float64
	LegendRow    float64
	TotalRow     float64
	SwatchRadius float64
	LabelFont    string
	LabelFill    string
	TickSize     float64
	TickPadding  float64
}

// DefaultRenderConfig is the dashboard chart geometry
var DefaultRenderConfig = RenderConfig{
	OuterWidth:   160,
	OuterHeight:  320,
	Margin:       Margins{Top: 10, Right: 40, Bottom: 165, Left: 0},
	BarGap:       3,
	BandAlign:    0.1,
	LegendOffset: 40,
	LegendRow:    20,
	TotalRow:     16,
	SwatchRadius: 5,
	LabelFont:    "8px sans-serif",
	LabelFill:    "#222",
	TickSize:     6,
	TickPadding:  3,
}

// Width of the plot area
func (c RenderConfig) Width() float64 {
	return c.OuterWidth - c.Margin.Left - c.Margin.Right
}

// Height of the plot area
func (c RenderConfig) Height() float64 {
	return c.OuterHeight - c.Margin.Top - c.Margin.Bottom
}

const (
	classMono      = "text-monospace"
	classMonoBold  = "text-monospace font-weight-bold"
	legendLabelX   = 20
	legendCountX   = 100
	crispOffset    = 0.5
	tickTextDY     = "0.32em"
	legendTextDY   = ".29em"
	barLabelDY     = "-.85em"
	barLabelOffset = 4
)

// Layout computes the chart scene for an input and direction using the
// default geometry.
func Layout(in ChartInput, dir Direction) Scene {
	return DefaultRenderConfig.Layout(in, dir)
}

// Layout computes the chart scene. RTL output is the horizontal mirror of
// LTR output about the outer width; colours stay with their labels.
func (c RenderConfig) Layout(in ChartInput, dir Direction) Scene {
	buckets := Fold(in)
	total := buckets.Total()
	width, height := c.Width(), c.Height()

	y := NewLinearScale([2]float64{0, float64(total)}, [2]float64{height, 0})
	x := NewBandScale(buckets.Labels(), width, c.BandAlign)
	barWidth := x.Step() - c.BarGap

	// place returns the left edge of an extent [x, x+w] after mirroring
	place := func(px, w float64) float64 {
		if dir == RTL {
			return c.OuterWidth - px - w
		}
		return px
	}

	scene := Scene{
		Width:     c.OuterWidth,
		Height:    c.OuterHeight,
		Direction: dir,
		OffsetY:   c.Margin.Top,
		Total:     total,
		Buckets:   buckets,
	}

	for _, b := range buckets.Ordered(dir) {
		bandX, _ := x.Position(b.Label)
		top := y.Map(float64(b.Value))
		scene.Nodes = append(scene.Nodes, Node{
			Kind: KindGroup,
			Key:  "bar-group:" + b.Label,
			X:    place(bandX+c.Margin.Left, barWidth),
			Y:    c.Margin.Top,
			Children: []Node{
				{
					Kind:   KindRect,
					Key:    "bar:" + b.Label,
					Y:      top,
					Width:  barWidth,
					Height: height - top,
					Fill:   b.Color,
				},
				{
					Kind:   KindText,
					Key:    "bar-label:" + b.Label,
					X:      barWidth / 2,
					Y:      top + barLabelOffset,
					DY:     barLabelDY,
					Anchor: "middle",
					Font:   c.LabelFont,
					Fill:   c.LabelFill,
					Text:   strconv.Itoa(b.Value),
				},
			},
		})
	}

	scene.Nodes = append(scene.Nodes, c.axis(y, total, place(width+c.Margin.Left, 0), dir))

	legend := Node{Kind: KindGroup, Key: "legend", Y: c.LegendOffset}
	for i, b := range buckets {
		legend.Children = append(legend.Children, Node{
			Kind: KindGroup,
			Y:    float64(i) * c.LegendRow,
			Children: []Node{
				{
					Kind: KindCircle,
					Key:  "swatch:" + b.Label,
					X:    place(c.SwatchRadius, 0),
					Y:    height,
					R:    c.SwatchRadius,
					Fill: b.Color,
				},
				{
					Kind:  KindText,
					Key:   "legend-label:" + b.Label,
					X:     place(legendLabelX, 0),
					Y:     height,
					DY:    legendTextDY,
					Class: classMono,
					Text:  b.Label,
				},
				{
					Kind:  KindText,
					Key:   "legend-count:" + b.Label,
					X:     place(legendCountX, 0),
					Y:     height,
					DY:    legendTextDY,
					Class: classMono,
					Text:  "· " + strconv.Itoa(b.Value),
				},
			},
		})
	}
	scene.Nodes = append(scene.Nodes, legend)

	totalY := height + c.LegendOffset + float64(len(buckets)+1)*c.TotalRow
	scene.Nodes = append(scene.Nodes, Node{
		Kind: KindGroup,
		Key:  "totals",
		Children: []Node{
			{
				Kind:  KindText,
				Key:   "total-label",
				X:     place(legendLabelX, 0),
				Y:     totalY,
				DY:    legendTextDY,
				Class: classMonoBold,
				Text:  "Total",
			},
			{
				Kind:  KindText,
				Key:   "total-value",
				X:     place(legendCountX, 0),
				Y:     totalY,
				DY:    legendTextDY,
				Class: classMonoBold,
				Text:  "· " + strconv.Itoa(total),
			},
		},
	})

	return scene
}

// axis builds the value axis with exactly two ticks, at 0 and total.
// Ticks point away from the plot: right in LTR, left in RTL.
func (c RenderConfig) axis(y LinearScale, total int, ax float64, dir Direction) Node {
	k := 1.0
	if dir == RTL {
		k = -1
	}
	r0 := y.Range[0] + crispOffset
	r1 := y.Range[1] + crispOffset

	node := Node{
		Kind:  KindGroup,
		Key:   "axis",
		Class: "y axis",
		X:     ax,
		Y:     c.Margin.Top,
		Children: []Node{{
			Kind:   KindPath,
			Key:    "axis-domain",
			D:      fmt.Sprintf("M%s,%sH0V%sH%s", num(k*c.TickSize), num(r0), num(r1), num(k*c.TickSize)),
			Stroke: "currentColor",
			Fill:   "none",
		}},
	}

	ticks := []struct {
		key   string
		value int
	}{
		{"tick:min", 0},
		{"tick:max", total},
	}
	for _, t := range ticks {
		node.Children = append(node.Children, Node{
			Kind:  KindGroup,
			Class: "tick",
			Y:     y.Map(float64(t.value)) + crispOffset,
			Children: []Node{
				{
					Kind:   KindLine,
					Key:    t.key + ":line",
					X2:     k * c.TickSize,
					Stroke: "currentColor",
				},
				{
					Kind:   KindText,
					Key:    t.key,
					X:      k * (c.TickSize + c.TickPadding),
					DY:     tickTextDY,
					Anchor: "start",
					Fill:   "currentColor",
					Text:   FormatCount(t.value),
				},
			},
		})
	}
	return node
}

// num formats a coordinate without trailing zeros
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
