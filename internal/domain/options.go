package domain

import "strings"

// Mode is the travel mode used for the calculation.
type Mode string

const (
	ModeDriving   Mode = "driving"
	ModeWalking   Mode = "walking"
	ModeBicycling Mode = "bicycling"
)

// Units selects the unit system of the human-readable distance text.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Avoid is an optional routing restriction. AvoidNone omits the parameter.
type Avoid string

const (
	AvoidNone     Avoid = ""
	AvoidTolls    Avoid = "tolls"
	AvoidHighways Avoid = "highways"
)

// OutputFormat is the response encoding requested from the service.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputXML  OutputFormat = "xml"
)

// Language is a supported response language code, lowercased.
type Language string

const DefaultLanguage Language = "en"

// CoordinatePolicy decides what happens to a malformed coordinate.
type CoordinatePolicy int

const (
	// CoordinatePolicyLenient fails a scalar coordinate input but drops a
	// malformed element of a list input with a warning.
	CoordinatePolicyLenient CoordinatePolicy = iota
	// CoordinatePolicyStrict fails the call for any malformed coordinate.
	CoordinatePolicyStrict
)

var (
	modes   = []Mode{ModeDriving, ModeWalking, ModeBicycling}
	units   = []Units{UnitsMetric, UnitsImperial}
	avoids  = []Avoid{AvoidTolls, AvoidHighways}
	formats = []OutputFormat{OutputJSON, OutputXML}
)

// supportedLanguages is the closed set of language codes the service accepts.
var supportedLanguages = func() map[Language]struct{} {
	codes := []string{
		"ar", "bg", "bn", "ca", "cs", "da", "de", "el", "en", "en-au", "en-gb",
		"es", "eu", "fa", "fi", "fil", "fr", "gl", "gu", "hi", "hr", "hu",
		"id", "it", "iw", "ja", "kn", "ko", "lt", "lv", "ml", "mr", "nl",
		"nn", "no", "or", "pl", "pt", "pt-br", "pt-pt", "rm", "ro", "ru",
		"sk", "sl", "sr", "sv", "tl", "ta", "te", "th", "tr", "uk", "vi",
		"zh-cn", "zh-tw",
	}
	m := make(map[Language]struct{}, len(codes))
	for _, c := range codes {
		m[Language(c)] = struct{}{}
	}
	return m
}()

// SupportedLanguage reports whether code (any case) is in the language table.
func SupportedLanguage(code string) bool {
	_, ok := supportedLanguages[Language(strings.ToLower(code))]
	return ok
}

func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeDriving, nil
	}
	return parseEnum("mode", s, modes)
}

func ParseUnits(s string) (Units, error) {
	if s == "" {
		return UnitsMetric, nil
	}
	return parseEnum("units", s, units)
}

// ParseAvoid returns AvoidNone for an empty value.
func ParseAvoid(s string) (Avoid, error) {
	if s == "" {
		return AvoidNone, nil
	}
	return parseEnum("avoid", s, avoids)
}

func ParseOutputFormat(s string) (OutputFormat, error) {
	if s == "" {
		return OutputJSON, nil
	}
	return parseEnum("output", s, formats)
}

func ParseLanguage(s string) (Language, error) {
	if s == "" {
		return DefaultLanguage, nil
	}
	if !SupportedLanguage(s) {
		return "", &ConfigurationError{Field: "language", Value: s}
	}
	return Language(strings.ToLower(s)), nil
}

// ParseSensor accepts "true" or "false" in any case.
func ParseSensor(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "false":
		return false, nil
	case "true":
		return true, nil
	default:
		return false, &ConfigurationError{Field: "sensor", Value: s}
	}
}

func parseEnum[T ~string](field, s string, allowed []T) (T, error) {
	lower := strings.ToLower(s)
	for _, v := range allowed {
		if string(v) == lower {
			return v, nil
		}
	}
	var zero T
	return zero, &ConfigurationError{Field: field, Value: s}
}

// OptionsConfig holds raw option values as supplied by the caller. Empty
// fields take their defaults.
type OptionsConfig struct {
	Mode     string
	Units    string
	Avoid    string
	Language string
	Output   string
	Sensor   string

	CoordinatePolicy CoordinatePolicy
}

// Options is the validated, immutable option set of a client.
type Options struct {
	mode     Mode
	units    Units
	avoid    Avoid
	language Language
	output   OutputFormat
	sensor   bool
	policy   CoordinatePolicy
}

// DefaultOptions returns driving, metric, no avoid, "en", json, sensor=false.
func DefaultOptions() Options {
	return Options{
		mode:     ModeDriving,
		units:    UnitsMetric,
		language: DefaultLanguage,
		output:   OutputJSON,
	}
}

// NewOptions validates every field of cfg. The first rejected field aborts
// construction with a *ConfigurationError.
func NewOptions(cfg OptionsConfig) (Options, error) {
	var (
		o   Options
		err error
	)
	if o.mode, err = ParseMode(cfg.Mode); err != nil {
		return Options{}, err
	}
	if o.units, err = ParseUnits(cfg.Units); err != nil {
		return Options{}, err
	}
	if o.avoid, err = ParseAvoid(cfg.Avoid); err != nil {
		return Options{}, err
	}
	if o.language, err = ParseLanguage(cfg.Language); err != nil {
		return Options{}, err
	}
	if o.output, err = ParseOutputFormat(cfg.Output); err != nil {
		return Options{}, err
	}
	if o.sensor, err = ParseSensor(cfg.Sensor); err != nil {
		return Options{}, err
	}
	switch cfg.CoordinatePolicy {
	case CoordinatePolicyLenient, CoordinatePolicyStrict:
		o.policy = cfg.CoordinatePolicy
	default:
		return Options{}, &ConfigurationError{Field: "coordinate_policy", Value: "unknown"}
	}
	return o, nil
}

func (o Options) Mode() Mode                         { return o.mode }
func (o Options) Units() Units                       { return o.units }
func (o Options) Avoid() Avoid                       { return o.avoid }
func (o Options) Language() Language                 { return o.language }
func (o Options) Output() OutputFormat               { return o.output }
func (o Options) Sensor() bool                       { return o.sensor }
func (o Options) CoordinatePolicy() CoordinatePolicy { return o.policy }
