package charting

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	in, err := ParseInput([]byte(`{"Missing":5,"Partial":10,"Complete":20,"Offline":0}`))
	require.NoError(t, err)
	assert.Equal(t, ChartInput{Missing: 5, Partial: 10, Complete: 20, Offline: 0}, in)

	in, err = ParseInput([]byte(`{"Missing":5,"Partial":10,"Complete":20,"Offline":0,"Conflict":3}`))
	require.NoError(t, err)
	assert.Equal(t, 3, in.Conflict)
}

func TestParseInputErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"malformed", `{"Missing":`, ErrInvalidPayload},
		{"empty", ``, ErrInvalidPayload},
		{"not an object", `[1,2,3]`, ErrInvalidPayload},
		{"string count", `{"Missing":"5","Partial":1,"Complete":1,"Offline":1}`, ErrInvalidPayload},
		{"missing Offline", `{"Missing":5,"Partial":10,"Complete":20}`, ErrMissingField},
		{"missing Missing", `{"Partial":10,"Complete":20,"Offline":1}`, ErrMissingField},
		{"negative", `{"Missing":-1,"Partial":10,"Complete":20,"Offline":1}`, ErrNegativeCount},
		{"negative conflict", `{"Missing":1,"Partial":10,"Complete":20,"Offline":1,"Conflict":-2}`, ErrNegativeCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput([]byte(tt.payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseInputRejectsOverflowingTotal(t *testing.T) {
	payloads := []string{
		fmt.Sprintf(`{"Missing":%d,"Partial":1,"Complete":0,"Offline":0}`, math.MaxInt),
		fmt.Sprintf(`{"Missing":1,"Partial":0,"Complete":0,"Offline":0,"Conflict":%d}`, math.MaxInt),
		fmt.Sprintf(`{"Missing":0,"Partial":%d,"Complete":%d,"Offline":2}`, math.MaxInt/2, math.MaxInt/2),
	}
	for _, p := range payloads {
		_, err := ParseInput([]byte(p))
		require.Error(t, err, p)
		assert.True(t, errors.Is(err, ErrCountOverflow), "got %v", err)
		assert.True(t, errors.Is(err, ErrInvalidPayload), "got %v", err)
	}

	// the largest representable total is still accepted
	in, err := ParseInput([]byte(fmt.Sprintf(`{"Missing":%d,"Partial":0,"Complete":0,"Offline":0}`, math.MaxInt)))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, Fold(in).Total())
	assert.True(t, Layout(in, LTR).Total >= 0)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, ChartInput{Missing: 1, Conflict: 2}.Validate())
	assert.True(t, errors.Is(ChartInput{Offline: -1}.Validate(), ErrNegativeCount))
	assert.True(t, errors.Is(ChartInput{Complete: math.MaxInt, Offline: 1}.Validate(), ErrCountOverflow))
}

func TestFoldMergesConflictIntoMissing(t *testing.T) {
	buckets := Fold(ChartInput{Missing: 5, Partial: 10, Complete: 20, Offline: 0, Conflict: 3})

	assert.Equal(t, []string{"Missing", "Partial", "Complete", "No Signal"}, buckets.Labels())
	missing, ok := buckets.Get(LabelMissing)
	require.True(t, ok)
	assert.Equal(t, 8, missing.Value)
	assert.Equal(t, 38, buckets.Total())

	_, ok = buckets.Get("Conflict")
	assert.False(t, ok)
}

func TestBucketsOrderedKeepsColours(t *testing.T) {
	buckets := Fold(ChartInput{Missing: 1, Partial: 2, Complete: 3, Offline: 4})
	rtl := buckets.Ordered(RTL)

	assert.Equal(t, []string{"No Signal", "Complete", "Partial", "Missing"}, rtl.Labels())
	for _, b := range rtl {
		orig, _ := buckets.Get(b.Label)
		assert.Equal(t, orig.Color, b.Color, b.Label)
		assert.Equal(t, orig.Value, b.Value, b.Label)
	}
	// original untouched
	assert.Equal(t, LabelMissing, buckets[0].Label)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("rtl")
	require.NoError(t, err)
	assert.Equal(t, RTL, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, LTR, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)

	var parsed Direction
	require.NoError(t, parsed.UnmarshalText([]byte("rtl")))
	assert.Equal(t, "rtl", parsed.String())
}
