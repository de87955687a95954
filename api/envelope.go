package api

import (
	"encoding/json"

	"github.com/studienwege/go-client/internal/errors"
)

// Envelope is the uniform wrapper around every API response body.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// wireResponse is the superset of success and error body shapes: the envelope
// fields plus the error body's status and field map.
type wireResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Data      json.RawMessage   `json:"data"`
	Timestamp string            `json:"timestamp"`
	Status    int               `json:"status"`
	Errors    map[string]string `json:"errors"`
}

func (w *wireResponse) envelope() *Envelope {
	return &Envelope{
		Success:   w.Success,
		Message:   w.Message,
		Data:      w.Data,
		Timestamp: w.Timestamp,
	}
}

// decodeData unmarshals the envelope's data payload into dst.
func decodeData(env *Envelope, dst any) error {
	if env == nil || len(env.Data) == 0 {
		return errors.Wrapf(errors.ErrRequestFailed, "response carried no data")
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return errors.Wrapf(err, "decoding response data")
	}
	return nil
}
