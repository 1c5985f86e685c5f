package distancematrix

import (
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/couchcryptid/distance-matrix-service/internal/domain"
)

// jsonResponse mirrors the JSON body of a distance matrix response.
type jsonResponse struct {
	Status               string    `json:"status"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	OriginAddresses      []string  `json:"origin_addresses"`
	DestinationAddresses []string  `json:"destination_addresses"`
	Rows                 []jsonRow `json:"rows"`
}

type jsonRow struct {
	Elements []jsonElement `json:"elements"`
}

type jsonElement struct {
	Status   string         `json:"status"`
	Duration *jsonTextValue `json:"duration,omitempty"`
	Distance *jsonTextValue `json:"distance,omitempty"`
}

type jsonTextValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

// xmlResponse mirrors the XML body. Addresses and rows repeat as sibling elements.
type xmlResponse struct {
	XMLName              xml.Name `xml:"DistanceMatrixResponse"`
	Status               string   `xml:"status"`
	ErrorMessage         string   `xml:"error_message"`
	OriginAddresses      []string `xml:"origin_address"`
	DestinationAddresses []string `xml:"destination_address"`
	Rows                 []xmlRow `xml:"row"`
}

type xmlRow struct {
	Elements []xmlElement `xml:"element"`
}

type xmlElement struct {
	Status   string        `xml:"status"`
	Duration *xmlTextValue `xml:"duration"`
	Distance *xmlTextValue `xml:"distance"`
}

type xmlTextValue struct {
	Text  string  `xml:"text"`
	Value float64 `xml:"value"`
}

// decodePayload parses body according to the configured output format.
func decodePayload(format domain.OutputFormat, body []byte) (domain.Payload, error) {
	switch format {
	case domain.OutputXML:
		var r xmlResponse
		if err := xml.Unmarshal(body, &r); err != nil {
			return domain.Payload{}, fmt.Errorf("xml: %w", err)
		}
		return r.payload(), nil
	default:
		var r jsonResponse
		if err := json.Unmarshal(body, &r); err != nil {
			return domain.Payload{}, fmt.Errorf("json: %w", err)
		}
		return r.payload(), nil
	}
}

func (r jsonResponse) payload() domain.Payload {
	p := domain.Payload{
		Status:               r.Status,
		ErrorMessage:         r.ErrorMessage,
		OriginAddresses:      r.OriginAddresses,
		DestinationAddresses: r.DestinationAddresses,
		Rows:                 make([]domain.Row, len(r.Rows)),
	}
	for i, row := range r.Rows {
		els := make([]domain.Element, len(row.Elements))
		for j, el := range row.Elements {
			els[j] = domain.Element{Status: el.Status}
			if el.Duration != nil {
				els[j].Duration = &domain.TextValue{Text: el.Duration.Text, Value: el.Duration.Value}
			}
			if el.Distance != nil {
				els[j].Distance = &domain.TextValue{Text: el.Distance.Text, Value: el.Distance.Value}
			}
		}
		p.Rows[i] = domain.Row{Elements: els}
	}
	return p
}

func (r xmlResponse) payload() domain.Payload {
	p := domain.Payload{
		Status:               r.Status,
		ErrorMessage:         r.ErrorMessage,
		OriginAddresses:      r.OriginAddresses,
		DestinationAddresses: r.DestinationAddresses,
		Rows:                 make([]domain.Row, len(r.Rows)),
	}
	for i, row := range r.Rows {
		els := make([]domain.Element, len(row.Elements))
		for j, el := range row.Elements {
			els[j] = domain.Element{Status: el.Status}
			if el.Duration != nil {
				els[j].Duration = &domain.TextValue{Text: el.Duration.Text, Value: el.Duration.Value}
			}
			if el.Distance != nil {
				els[j].Distance = &domain.TextValue{Text: el.Distance.Text, Value: el.Distance.Value}
			}
		}
		p.Rows[i] = domain.Row{Elements: els}
	}
	return p
}
