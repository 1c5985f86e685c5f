package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Lookup response statuses.
const (
	LookupOK      = "ok"
	LookupInvalid = "invalid"
	LookupFailed  = "failed"
)

// Endpoints groups the address and coordinate sources of one side of a lookup.
type Endpoints struct {
	Addresses   Source `json:"addresses"`
	Coordinates Source `json:"coordinates"`
}

// LookupRequest is the message consumed from the source topic. Each source
// may be a JSON string (scalar) or an array of strings (list).
type LookupRequest struct {
	ID           string    `json:"id"`
	Origins      Endpoints `json:"origins"`
	Destinations Endpoints `json:"destinations"`
}

// Input converts the request into client input.
func (r LookupRequest) Input() LookupInput {
	return LookupInput{
		OriginAddresses:        r.Origins.Addresses,
		OriginCoordinates:      r.Origins.Coordinates,
		DestinationAddresses:   r.Destinations.Addresses,
		DestinationCoordinates: r.Destinations.Coordinates,
	}
}

// LookupResponse is the message published to the sink topic.
type LookupResponse struct {
	ID          string           `json:"id"`
	Status      string           `json:"status"`
	Results     []DistanceResult `json:"results,omitempty"`
	Error       string           `json:"error,omitempty"`
	ProcessedAt time.Time        `json:"processed_at"`
}

// ParseLookupRequest decodes a raw message. Requests without an id get a
// deterministic one derived from their sources.
func ParseLookupRequest(raw RawEvent) (LookupRequest, error) {
	var req LookupRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return LookupRequest{}, fmt.Errorf("parse lookup request: %w", err)
	}
	if req.ID == "" {
		req.ID = generateID(req)
	}
	return req, nil
}

// generateID hashes the four sources so replays of the same request map to
// the same response key.
func generateID(req LookupRequest) string {
	parts := []string{
		sourceKey(req.Origins.Addresses),
		sourceKey(req.Origins.Coordinates),
		sourceKey(req.Destinations.Addresses),
		sourceKey(req.Destinations.Coordinates),
	}
	hash := sha256.Sum256([]byte(strings.Join(parts, "#")))
	return "lookup-" + hex.EncodeToString(hash[:8])
}

func sourceKey(s Source) string {
	if !s.Present() {
		return "-"
	}
	prefix := "1:"
	if s.IsList() {
		prefix = "n:"
	}
	return prefix + strings.Join(s.values, "|")
}

// UnmarshalJSON accepts null, a string, or an array of strings.
func (s *Source) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = Source{}
		return nil
	}
	if b[0] == '[' {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*s = Many(list...)
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*s = One(one)
	return nil
}

// MarshalJSON writes null, a string, or an array matching how s was built.
func (s Source) MarshalJSON() ([]byte, error) {
	switch {
	case !s.set:
		return []byte("null"), nil
	case s.list:
		return json.Marshal(s.values)
	default:
		return json.Marshal(s.values[0])
	}
}
