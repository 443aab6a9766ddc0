package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedPayload is returned when a structured FAQ payload cannot be used.
var ErrMalformedPayload = errors.New("malformed faq payload")

// StatusPublished is the only record status that is harvested.
const StatusPublished = "published"

// PayloadID is a record id given either as a JSON string ("ockovani-deti")
// or a JSON number (7). Numbers keep their literal text.
type PayloadID string

// UnmarshalJSON accepts a string, a number or null.
func (id *PayloadID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*id = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PayloadID(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a string or number: %w", err)
		}
		*id = PayloadID(n.String())
	}
	return nil
}

func (id PayloadID) String() string { return string(id) }

// PayloadRecord is one entry of an embedded structured FAQ payload.
type PayloadRecord struct {
	ID     PayloadID `json:"id"`
	Title  string    `json:"title"`
	Status string    `json:"status"`
}

type payloadEnvelope struct {
	Items []PayloadRecord `json:"items"`
}

// DecodePayload parses either a bare JSON array of records or an object with
// an "items" array and returns the published records in payload order.
// A published record without id or title invalidates the whole payload.
func DecodePayload(raw []byte) ([]PayloadRecord, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedPayload)
	}

	var records []PayloadRecord
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
	} else {
		var env payloadEnvelope
		if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		if env.Items == nil {
			return nil, fmt.Errorf("%w: missing items", ErrMalformedPayload)
		}
		records = env.Items
	}

	published := make([]PayloadRecord, 0, len(records))
	for i, r := range records {
		if r.Status != StatusPublished {
			continue
		}
		if r.ID == "" || strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("%w: record %d lacks id or title", ErrMalformedPayload, i)
		}
		published = append(published, r)
	}
	return published, nil
}
