package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate_Valid(t *testing.T) {
	tests := []struct {
		in       string
		lat, lng float64
	}{
		{"49.2827,-123.1207", 49.2827, -123.1207},
		{"-33,151", -33, 151},
		{"0.5,0", 0.5, 0},
		{"-1.50,-0.25", -1.5, -0.25},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			loc, err := ParseCoordinate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, KindCoordinate, loc.Kind)
			assert.InDelta(t, tc.lat, loc.Lat, 1e-9)
			assert.InDelta(t, tc.lng, loc.Lng, 1e-9)
			assert.Equal(t, tc.in, loc.String(), "literal is kept verbatim")
		})
	}
}

func TestParseCoordinate_Invalid(t *testing.T) {
	for _, in := range []string{
		"-1.50,",
		",12.5",
		"12.5",
		"1,2,3",
		"abc,def",
		".5,1",
		"1.,2",
		"+1,2",
		" 1,2",
		"1e3,2",
		"",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCoordinate(in)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, in, verr.Value)
		})
	}
}

func TestNewAddress_AnyString(t *testing.T) {
	loc := NewAddress("Vancouver+BC")
	assert.Equal(t, KindAddress, loc.Kind)
	assert.Equal(t, "Vancouver+BC", loc.String())
	assert.Equal(t, "address", loc.Kind.String())
}
