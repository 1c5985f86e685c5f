package domain

// StatusOK is the service status for a successful response or element.
const StatusOK = "OK"

// NotAvailable replaces duration and distance of a pair the service could not resolve.
const NotAvailable = "N/A"

// DistanceResult is the outcome for one origin/destination pair.
type DistanceResult struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Duration    string `json:"duration"`
	Distance    string `json:"distance"`
}

// TextValue is a human-readable quantity as returned by the service.
type TextValue struct {
	Text  string
	Value float64
}

// Element is one cell of the response matrix.
type Element struct {
	Status   string
	Duration *TextValue
	Distance *TextValue
}

// Row holds the elements for one origin, indexed by destination.
type Row struct {
	Elements []Element
}

// Payload is the decoded service response, independent of wire format.
type Payload struct {
	Status               string
	ErrorMessage         string
	OriginAddresses      []string
	DestinationAddresses []string
	Rows                 []Row
}

// MapResults flattens the matrix in row-major order. Labels and matrix cells
// are joined by index only. Cells whose status is not OK, or that are missing
// from the matrix, get NotAvailable for both duration and distance.
func MapResults(p Payload) []DistanceResult {
	out := make([]DistanceResult, 0, len(p.OriginAddresses)*len(p.DestinationAddresses))
	for i, origin := range p.OriginAddresses {
		var row Row
		if i < len(p.Rows) {
			row = p.Rows[i]
		}
		for j, dest := range p.DestinationAddresses {
			r := DistanceResult{
				Origin:      origin,
				Destination: dest,
				Duration:    NotAvailable,
				Distance:    NotAvailable,
			}
			if j < len(row.Elements) {
				el := row.Elements[j]
				if el.Status == StatusOK {
					r.Duration = textOf(el.Duration)
					r.Distance = textOf(el.Distance)
				}
			}
			out = append(out, r)
		}
	}
	return out
}

func textOf(v *TextValue) string {
	if v == nil {
		return NotAvailable
	}
	return v.Text
}
