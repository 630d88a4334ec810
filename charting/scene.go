package charting

// NodeKind tags a scene node
type NodeKind string

const (
	KindGroup  NodeKind = "group"
	KindRect   NodeKind = "rect"
	KindCircle NodeKind = "circle"
	KindText   NodeKind = "text"
	KindLine   NodeKind = "line"
	KindPath   NodeKind = "path"
)

// Node is one positioned shape. Coordinates are relative to the parent
// group; a group's X/Y is its translation.
type Node struct {
	Kind NodeKind `json:"kind"`
	// Key names the logical item, e.g. "bar:Missing"
	Key string `json:"key,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	R      float64 `json:"r,omitempty"`
	D      string  `json:"d,omitempty"`

	DY     string `json:"dy,omitempty"`
	Anchor string `json:"anchor,omitempty"`
	Font   string `json:"font,omitempty"`
	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`
	Class  string `json:"class,omitempty"`
	Text   string `json:"text,omitempty"`

	Children []Node `json:"children,omitempty"`
}

// Scene is a backend-independent description of one chart
type Scene struct {
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Direction Direction `json:"direction"`
	// OffsetY is the outer translation applied to the whole svg
	OffsetY float64 `json:"offset_y"`
	Total   int     `json:"total"`
	Buckets Buckets `json:"buckets"`
	Nodes   []Node  `json:"nodes"`
}

// Find returns the first node with the given key, searching depth-first.
func (s Scene) Find(key string) (Node, bool) {
	return findNode(s.Nodes, key)
}

func findNode(nodes []Node, key string) (Node, bool) {
	for _, n := range nodes {
		if n.Key == key {
			return n, true
		}
		if found, ok := findNode(n.Children, key); ok {
			return found, true
		}
	}
	return Node{}, false
}

// Placed is a keyed node with its absolute position
type Placed struct {
	Node
	AbsX float64
	AbsY float64
}

// Flatten resolves group translations and returns every keyed leaf in
// document order.
func (s Scene) Flatten() []Placed {
	var out []Placed
	flatten(s.Nodes, 0, 0, &out)
	return out
}

func flatten(nodes []Node, ox, oy float64, out *[]Placed) {
	for _, n := range nodes {
		if n.Kind == KindGroup {
			flatten(n.Children, ox+n.X, oy+n.Y, out)
			continue
		}
		if n.Key == "" {
			continue
		}
		*out = append(*out, Placed{Node: n, AbsX: ox + n.X, AbsY: oy + n.Y})
	}
}
