package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// LocationKind tags which variant a Location holds.
type LocationKind int

const (
	KindAddress LocationKind = iota
	KindCoordinate
)

func (k LocationKind) String() string {
	if k == KindCoordinate {
		return "coordinate"
	}
	return "address"
}

// coordinatePart matches one half of a "lat,lng" literal: optional minus,
// at least one digit, optional fractional part.
var coordinatePart = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Location is a single origin or destination: a free-text address or a
// validated latitude/longitude pair.
type Location struct {
	Kind    LocationKind
	Address string
	Lat     float64
	Lng     float64

	// literal is the coordinate text as supplied, serialized verbatim.
	literal string
}

// NewAddress wraps a free-text address. Any string is a valid address.
func NewAddress(s string) Location {
	return Location{Kind: KindAddress, Address: s}
}

// ParseCoordinate validates a "lat,lng" literal. A malformed literal is
// rejected; it is never reinterpreted as an address.
func ParseCoordinate(s string) (Location, error) {
	if strings.Count(s, ",") != 1 {
		return Location{}, &ValidationError{Value: s, Message: "invalid coordinate"}
	}
	latStr, lngStr, _ := strings.Cut(s, ",")
	if !coordinatePart.MatchString(latStr) || !coordinatePart.MatchString(lngStr) {
		return Location{}, &ValidationError{Value: s, Message: "invalid coordinate"}
	}

	// The pattern guarantees both halves parse.
	lat, _ := strconv.ParseFloat(latStr, 64)
	lng, _ := strconv.ParseFloat(lngStr, 64)
	return Location{Kind: KindCoordinate, Lat: lat, Lng: lng, literal: s}, nil
}

// String returns the value as it appears in the request query.
func (l Location) String() string {
	if l.Kind == KindCoordinate {
		return l.literal
	}
	return l.Address
}
