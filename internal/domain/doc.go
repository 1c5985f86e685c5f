// Package domain models distance matrix lookups: the locations a caller asks
// about, the option set sent with every request, and the per-pair results
// mapped from the service response.
//
// # Locations
//
// A location is either a free-text address or a coordinate literal:
//
//	"Vancouver+BC"      address, sent verbatim ('+' is read as a space)
//	"49.2827,-123.1207" coordinate, "<lat>,<lng>"
//
// Each half of a coordinate must match -?digits(.digits)?. A literal with a
// comma that fails the pattern (e.g. "-1.50,") is an invalid coordinate; it is
// never reinterpreted as an address.
//
// # Malformed coordinates
//
// Scalar and list inputs are handled differently under the default
// [CoordinatePolicyLenient]:
//
//	One("-1.50,")             the call fails with a ValidationError for the side
//	Many("-1.50,", "1,2")     "-1.50," is reported through the WarnFunc and dropped
//
// [CoordinatePolicyStrict] fails the call in both cases. If dropping leaves a
// side with no locations at all, the call fails with
// "missing mandatory param: <side>".
//
// # Request shape
//
//	GET {base}/{json|xml}?key=K&sensor=false[&avoid=tolls]&units=metric&mode=driving&language=en
//	    &origins=o1|o2&destinations=d1|d2
//
// Origins are address sources followed by coordinate sources, each in input
// order; destinations likewise. Query keys are always written in the order
// above so identical inputs produce identical URLs.
//
// # Response mapping
//
// The service echoes resolved origin and destination labels in two ordered
// lists and returns one row per origin with one element per destination.
// Labels and cells are joined by index only. [MapResults] walks origins in
// the outer loop and destinations in the inner loop; an element whose status
// is not "OK" yields "N/A" for both duration and distance.
//
// # Quotas
//
// The service allows at most 100 elements (origins × destinations) per
// request, 100 elements per 10 seconds and 2500 per day. The client warns
// when a single request exceeds 100 elements and enforces none of them.
package domain
