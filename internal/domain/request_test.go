package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectWarnings(ws *[]MalformedElementWarning) WarnFunc {
	return func(w MalformedElementWarning) { *ws = append(*ws, w) }
}

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	return verr
}

func TestBuildRequest_MissingOrigins(t *testing.T) {
	_, err := BuildRequest(LookupInput{
		DestinationAddresses: One("Seattle"),
	}, DefaultOptions(), nil)

	verr := requireValidationError(t, err)
	assert.Equal(t, "missing mandatory param: origins", err.Error())
	assert.Equal(t, "origins", verr.Field)
}

func TestBuildRequest_MissingOriginsWinsWhenBothAbsent(t *testing.T) {
	_, err := BuildRequest(LookupInput{}, DefaultOptions(), nil)
	requireValidationError(t, err)
	assert.Equal(t, "missing mandatory param: origins", err.Error())
}

func TestBuildRequest_MissingDestinations(t *testing.T) {
	_, err := BuildRequest(LookupInput{
		OriginAddresses:   One("Vancouver"),
		OriginCoordinates: Many("49.28,-123.12"),
	}, DefaultOptions(), nil)

	verr := requireValidationError(t, err)
	assert.Equal(t, "missing mandatory param: destinations", err.Error())
	assert.Equal(t, "destinations", verr.Field)
}

func TestBuildRequest_EmptyListIsAbsent(t *testing.T) {
	_, err := BuildRequest(LookupInput{
		OriginAddresses:      Many(),
		DestinationAddresses: One("Seattle"),
	}, DefaultOptions(), nil)
	requireValidationError(t, err)
	assert.Equal(t, "missing mandatory param: origins", err.Error())
}

func TestBuildRequest_AddressesBeforeCoordinates(t *testing.T) {
	req, err := BuildRequest(LookupInput{
		OriginCoordinates:      Many("1,2", "3,4"),
		OriginAddresses:        Many("A", "B"),
		DestinationCoordinates: One("5.5,-6.5"),
		DestinationAddresses:   One("C"),
	}, DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, "A|B|1,2|3,4", joinLocations(req.Origins))
	assert.Equal(t, "C|5.5,-6.5", joinLocations(req.Destinations))
	assert.Equal(t, 8, req.ElementCount())
}

// Lenient policy: a scalar coordinate fails hard, a list element is dropped
// with a warning.
func TestBuildRequest_ScalarMalformedCoordinateFails(t *testing.T) {
	var warnings []MalformedElementWarning
	_, err := BuildRequest(LookupInput{
		OriginCoordinates:    One("-1.50,"),
		DestinationAddresses: One("Seattle"),
	}, DefaultOptions(), collectWarnings(&warnings))

	verr := requireValidationError(t, err)
	assert.Equal(t, "origins", verr.Field)
	assert.Equal(t, "-1.50,", verr.Value)
	assert.Contains(t, err.Error(), "origins")
	assert.Empty(t, warnings)
}

func TestBuildRequest_ListMalformedCoordinateDropped(t *testing.T) {
	var warnings []MalformedElementWarning
	req, err := BuildRequest(LookupInput{
		OriginCoordinates:    Many("10,20", "-1.50,", "30,40"),
		DestinationAddresses: One("Seattle"),
	}, DefaultOptions(), collectWarnings(&warnings))
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Equal(t, MalformedElementWarning{Field: "origins", Value: "-1.50,"}, warnings[0])
	assert.Contains(t, warnings[0].Error(), `"-1.50,"`)
	assert.Equal(t, "10,20|30,40", joinLocations(req.Origins))
}

func TestBuildRequest_ListAllDroppedIsMissing(t *testing.T) {
	var warnings []MalformedElementWarning
	_, err := BuildRequest(LookupInput{
		OriginAddresses:        One("Seattle"),
		DestinationCoordinates: Many("x,y", "-1.50,"),
	}, DefaultOptions(), collectWarnings(&warnings))

	requireValidationError(t, err)
	assert.Equal(t, "missing mandatory param: destinations", err.Error())
	assert.Len(t, warnings, 2)
}

func TestBuildRequest_NilWarnFunc(t *testing.T) {
	req, err := BuildRequest(LookupInput{
		OriginCoordinates:    Many("-1.50,", "1,1"),
		DestinationAddresses: One("Seattle"),
	}, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Len(t, req.Origins, 1)
}

func TestBuildRequest_StrictPolicyRejectsListElement(t *testing.T) {
	opts, err := NewOptions(OptionsConfig{CoordinatePolicy: CoordinatePolicyStrict})
	require.NoError(t, err)

	var warnings []MalformedElementWarning
	_, err = BuildRequest(LookupInput{
		OriginAddresses:        One("Seattle"),
		DestinationCoordinates: Many("10,20", "-1.50,"),
	}, opts, collectWarnings(&warnings))

	verr := requireValidationError(t, err)
	assert.Equal(t, "destinations", verr.Field)
	assert.Equal(t, "-1.50,", verr.Value)
	assert.Empty(t, warnings)
}

func TestRequest_URL(t *testing.T) {
	req, err := BuildRequest(LookupInput{
		OriginAddresses:      Many("Vancouver+BC", "Seattle"),
		DestinationAddresses: Many("San+Francisco", "Victoria+BC"),
	}, DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t,
		"https://maps.googleapis.com/maps/api/distancematrix/json?key=secret&sensor=false&units=metric&mode=driving&language=en"+
			"&origins=Vancouver+BC|Seattle&destinations=San+Francisco|Victoria+BC",
		req.URL("https://maps.googleapis.com/maps/api/distancematrix/", "secret"),
	)
}

func TestRequest_QueryWithAvoidAndEscaping(t *testing.T) {
	opts, err := NewOptions(OptionsConfig{
		Mode:     "bicycling",
		Units:    "imperial",
		Avoid:    "highways",
		Language: "fr",
		Sensor:   "true",
	})
	require.NoError(t, err)

	req, err := BuildRequest(LookupInput{
		OriginAddresses:        One("New York & Co"),
		DestinationCoordinates: One("40.7,-74.0"),
	}, opts, nil)
	require.NoError(t, err)

	assert.Equal(t,
		"key=k&sensor=true&avoid=highways&units=imperial&mode=bicycling&language=fr"+
			"&origins=New+York+%26+Co&destinations=40.7,-74.0",
		req.Query("k"),
	)
}

func TestRequest_SerializationIsIdempotent(t *testing.T) {
	in := LookupInput{
		OriginAddresses:        Many("A", "B"),
		OriginCoordinates:      Many("1,2"),
		DestinationAddresses:   One("C"),
		DestinationCoordinates: Many("3,4", "5,6"),
	}
	opts := DefaultOptions()

	first, err := BuildRequest(in, opts, nil)
	require.NoError(t, err)
	second, err := BuildRequest(in, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, first.URL("https://x.test", "k"), second.URL("https://x.test", "k"))
}

func TestSource_ValuesIsCopy(t *testing.T) {
	in := []string{"a", "b"}
	s := Many(in...)
	in[0] = "changed"
	vals := s.Values()
	vals[1] = "changed"

	assert.Equal(t, []string{"a", "b"}, s.Values())
	assert.True(t, s.IsList())
	assert.False(t, One("a").IsList())
	assert.False(t, Source{}.Present())
}
