package charting

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// WriteSVG renders a scene as a standalone <svg> element.
func WriteSVG(w io.Writer, s Scene) error {
	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	writeAttr(&buf, "width", num(s.Width))
	writeAttr(&buf, "height", num(s.Height))
	writeAttr(&buf, "direction", s.Direction.String())
	writeAttr(&buf, "transform", fmt.Sprintf("translate(0,%s)", num(s.OffsetY)))
	buf.WriteString(">")
	for _, n := range s.Nodes {
		writeNode(&buf, n)
	}
	buf.WriteString("</svg>")

	_, err := w.Write(buf.Bytes())
	return err
}

// Render parses a payload, lays it out and writes the SVG.
func Render(w io.Writer, payload []byte, dir Direction) error {
	in, err := ParseInput(payload)
	if err != nil {
		return err
	}
	return WriteSVG(w, Layout(in, dir))
}

func writeNode(buf *bytes.Buffer, n Node) {
	switch n.Kind {
	case KindGroup:
		buf.WriteString("<g")
		if n.X != 0 || n.Y != 0 {
			writeAttr(buf, "transform", fmt.Sprintf("translate(%s,%s)", num(n.X), num(n.Y)))
		}
		writeOptional(buf, "class", n.Class)
		buf.WriteString(">")
		for _, c := range n.Children {
			writeNode(buf, c)
		}
		buf.WriteString("</g>")

	case KindRect:
		buf.WriteString("<rect")
		if n.X != 0 {
			writeAttr(buf, "x", num(n.X))
		}
		writeAttr(buf, "y", num(n.Y))
		writeAttr(buf, "width", num(n.Width))
		writeAttr(buf, "height", num(n.Height))
		writeOptional(buf, "fill", n.Fill)
		buf.WriteString("/>")

	case KindCircle:
		buf.WriteString("<circle")
		writeAttr(buf, "cx", num(n.X))
		writeAttr(buf, "cy", num(n.Y))
		writeAttr(buf, "r", num(n.R))
		writeOptional(buf, "fill", n.Fill)
		buf.WriteString("/>")

	case KindLine:
		buf.WriteString("<line")
		if n.X != 0 || n.Y != 0 {
			writeAttr(buf, "x1", num(n.X))
			writeAttr(buf, "y1", num(n.Y))
		}
		writeAttr(buf, "x2", num(n.X2))
		if n.Y2 != 0 {
			writeAttr(buf, "y2", num(n.Y2))
		}
		writeOptional(buf, "stroke", n.Stroke)
		buf.WriteString("/>")

	case KindPath:
		buf.WriteString(`<path class="domain"`)
		writeAttr(buf, "d", n.D)
		writeOptional(buf, "stroke", n.Stroke)
		writeOptional(buf, "fill", n.Fill)
		buf.WriteString("/>")

	case KindText:
		buf.WriteString("<text")
		writeAttr(buf, "x", num(n.X))
		if n.Y != 0 {
			writeAttr(buf, "y", num(n.Y))
		}
		writeOptional(buf, "dy", n.DY)
		writeOptional(buf, "text-anchor", n.Anchor)
		writeOptional(buf, "fill", n.Fill)
		if n.Font != "" {
			writeAttr(buf, "style", "font: "+n.Font)
		}
		writeOptional(buf, "class", n.Class)
		buf.WriteString(">")
		xml.EscapeText(buf, []byte(n.Text))
		buf.WriteString("</text>")
	}
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteString(" ")
	buf.WriteString(name)
	buf.WriteString(`="`)
	xml.EscapeText(buf, []byte(value))
	buf.WriteString(`"`)
}

func writeOptional(buf *bytes.Buffer, name, value string) {
	if value != "" {
		writeAttr(buf, name, value)
	}
}
