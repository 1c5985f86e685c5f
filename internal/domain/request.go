package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Source is one optional lookup input: absent (zero value), a single scalar
// value, or a list of values. The distinction matters only for coordinates,
// see CoordinatePolicy.
type Source struct {
	values []string
	list   bool
	set    bool
}

// One returns a scalar source.
func One(s string) Source {
	return Source{values: []string{s}, set: true}
}

// Many returns a list source. An empty list counts as absent.
func Many(ss ...string) Source {
	if len(ss) == 0 {
		return Source{}
	}
	return Source{values: append([]string(nil), ss...), list: true, set: true}
}

// Present reports whether the source was supplied.
func (s Source) Present() bool { return s.set }

// IsList reports whether the source was supplied in list form.
func (s Source) IsList() bool { return s.list }

// Values returns a copy of the supplied strings.
func (s Source) Values() []string { return append([]string(nil), s.values...) }

// LookupInput carries the four optional origin/destination sources of a call.
type LookupInput struct {
	OriginAddresses        Source
	OriginCoordinates      Source
	DestinationAddresses   Source
	DestinationCoordinates Source
}

// Request is a validated lookup ready to be serialized.
type Request struct {
	Origins      []Location
	Destinations []Location
	Options      Options
}

const (
	fieldOrigins      = "origins"
	fieldDestinations = "destinations"
)

// BuildRequest validates in against opts and returns the ordered request.
// Addresses precede coordinates on each side, both in input order. warn may
// be nil.
func BuildRequest(in LookupInput, opts Options, warn WarnFunc) (Request, error) {
	if !in.OriginAddresses.Present() && !in.OriginCoordinates.Present() {
		return Request{}, missingParam(fieldOrigins)
	}
	if !in.DestinationAddresses.Present() && !in.DestinationCoordinates.Present() {
		return Request{}, missingParam(fieldDestinations)
	}

	origins, err := collect(fieldOrigins, in.OriginAddresses, in.OriginCoordinates, opts.policy, warn)
	if err != nil {
		return Request{}, err
	}
	destinations, err := collect(fieldDestinations, in.DestinationAddresses, in.DestinationCoordinates, opts.policy, warn)
	if err != nil {
		return Request{}, err
	}

	return Request{Origins: origins, Destinations: destinations, Options: opts}, nil
}

func collect(field string, addrs, coords Source, policy CoordinatePolicy, warn WarnFunc) ([]Location, error) {
	out := make([]Location, 0, len(addrs.values)+len(coords.values))
	for _, a := range addrs.values {
		out = append(out, NewAddress(a))
	}
	for _, c := range coords.values {
		loc, err := ParseCoordinate(c)
		if err == nil {
			out = append(out, loc)
			continue
		}
		if !coords.list || policy == CoordinatePolicyStrict {
			return nil, &ValidationError{Field: field, Value: c, Message: "invalid coordinate for " + field}
		}
		if warn != nil {
			warn(MalformedElementWarning{Field: field, Value: c})
		}
	}
	if len(out) == 0 {
		return nil, missingParam(field)
	}
	return out, nil
}

func missingParam(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "missing mandatory param: " + field}
}

// Query serializes the request parameters in a fixed order:
// key, sensor, avoid (when set), units, mode, language, origins, destinations.
func (r Request) Query(apiKey string) string {
	var b strings.Builder
	add := func(k, v string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(escapeValue(v))
	}

	add("key", apiKey)
	add("sensor", strconv.FormatBool(r.Options.sensor))
	if r.Options.avoid != AvoidNone {
		add("avoid", string(r.Options.avoid))
	}
	add("units", string(r.Options.units))
	add("mode", string(r.Options.mode))
	add("language", string(r.Options.language))
	add("origins", joinLocations(r.Origins))
	add("destinations", joinLocations(r.Destinations))
	return b.String()
}

// URL returns the full GET URL: base + "/" + output format + "?" + query.
func (r Request) URL(baseURL, apiKey string) string {
	return strings.TrimRight(baseURL, "/") + "/" + string(r.Options.output) + "?" + r.Query(apiKey)
}

// ElementCount is the number of origin×destination pairs the request asks for.
func (r Request) ElementCount() int {
	return len(r.Origins) * len(r.Destinations)
}

func joinLocations(locs []Location) string {
	parts := make([]string, len(locs))
	for i, l := range locs {
		parts[i] = l.String()
	}
	return strings.Join(parts, "|")
}

// keepLiteral lists the bytes left unescaped so values stay readable on the
// wire: the pipe and comma delimiters, and '+' which the service reads as a space.
var keepLiteral = strings.NewReplacer("%2C", ",", "%7C", "|", "%2B", "+", "%3A", ":")

func escapeValue(v string) string {
	return keepLiteral.Replace(url.QueryEscape(v))
}
