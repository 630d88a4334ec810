package charting

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidPayload = errors.New("invalid chart payload")
	ErrMissingField   = errors.New("missing chart field")
	ErrNegativeCount  = errors.New("negative chart count")
	ErrCountOverflow  = errors.New("chart counts overflow total")
)

// Bucket labels in canonical (left-to-right) order
const (
	LabelMissing  = "Missing"
	LabelPartial  = "Partial"
	LabelComplete = "Complete"
	LabelNoSignal = "No Signal"
)

// ChartInput is the payload carried on a chart container
type ChartInput struct {
	Missing  int `json:"Missing"`
	Partial  int `json:"Partial"`
	Complete int `json:"Complete"`
	Offline  int `json:"Offline"`
	Conflict int `json:"Conflict,omitempty"`
}

// rawInput detects absent fields, which plain ints can't
type rawInput struct {
	Missing  *int `json:"Missing"`
	Partial  *int `json:"Partial"`
	Complete *int `json:"Complete"`
	Offline  *int `json:"Offline"`
	Conflict *int `json:"Conflict"`
}

// ParseInput decodes a data-chart payload.
func ParseInput(payload []byte) (ChartInput, error) {
	var raw rawInput
	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&raw); err != nil {
		return ChartInput{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	fields := []struct {
		name string
		val  *int
	}{
		{"Missing", raw.Missing},
		{"Partial", raw.Partial},
		{"Complete", raw.Complete},
		{"Offline", raw.Offline},
	}
	for _, f := range fields {
		if f.val == nil {
			return ChartInput{}, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
		if *f.val < 0 {
			return ChartInput{}, fmt.Errorf("%w: %s=%d", ErrNegativeCount, f.name, *f.val)
		}
	}

	in := ChartInput{
		Missing:  *raw.Missing,
		Partial:  *raw.Partial,
		Complete: *raw.Complete,
		Offline:  *raw.Offline,
	}
	if raw.Conflict != nil {
		if *raw.Conflict < 0 {
			return ChartInput{}, fmt.Errorf("%w: Conflict=%d", ErrNegativeCount, *raw.Conflict)
		}
		in.Conflict = *raw.Conflict
	}
	if err := in.Validate(); err != nil {
		return ChartInput{}, err
	}
	return in, nil
}

// Validate checks that every count is non-negative and that the counts sum
// without overflowing int.
func (in ChartInput) Validate() error {
	fields := []struct {
		name string
		val  int
	}{
		{"Missing", in.Missing},
		{"Conflict", in.Conflict},
		{"Partial", in.Partial},
		{"Complete", in.Complete},
		{"Offline", in.Offline},
	}
	total := 0
	for _, f := range fields {
		if f.val < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeCount, f.name, f.val)
		}
		if f.val > math.MaxInt-total {
			return fmt.Errorf("%w: %w at %s", ErrInvalidPayload, ErrCountOverflow, f.name)
		}
		total += f.val
	}
	return nil
}

// Bucket is one displayed status category
type Bucket struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Buckets are always the four displayed categories in canonical order
type Buckets []Bucket

// Fold merges Conflict into Missing and returns the displayed buckets.
func Fold(in ChartInput) Buckets {
	return Buckets{
		{Label: LabelMissing, Value: in.Missing + in.Conflict, Color: "#dc3545"},
		{Label: LabelPartial, Value: in.Partial, Color: "#ffc107"},
		{Label: LabelComplete, Value: in.Complete, Color: "#007bff"},
		{Label: LabelNoSignal, Value: in.Offline, Color: "#aaaaaa"},
	}
}

// Total sums the bucket values
func (b Buckets) Total() int {
	total := 0
	for _, bucket := range b {
		total += bucket.Value
	}
	return total
}

// Labels returns bucket labels in order
func (b Buckets) Labels() []string {
	labels := make([]string, len(b))
	for i, bucket := range b {
		labels[i] = bucket.Label
	}
	return labels
}

// Get looks up a bucket by label
func (b Buckets) Get(label string) (Bucket, bool) {
	for _, bucket := range b {
		if bucket.Label == label {
			return bucket, true
		}
	}
	return Bucket{}, false
}

// Ordered returns the buckets in screen order for the given direction.
// The colour stays attached to its label.
func (b Buckets) Ordered(dir Direction) Buckets {
	out := make(Buckets, len(b))
	copy(out, b)
	if dir == RTL {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Direction is the page reading direction
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// MarshalText lets Direction travel as "ltr"/"rtl" in JSON
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses "ltr"/"rtl"
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection accepts "ltr", "rtl" or "" (LTR).
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "ltr", "LTR":
		return LTR, nil
	case "rtl", "RTL":
		return RTL, nil
	}
	return LTR, fmt.Errorf("invalid direction %q", s)
}
