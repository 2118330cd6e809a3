package api

import (
	"encoding/json"
)

// envelope is the uniform response shape of every registry endpoint:
// {success: bool, data?, message?}. The email-status endpoint additionally
// carries a top-level status field.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  string          `json:"status"`
	Count   int             `json:"count"`
}

// decodeData unmarshals the envelope's data payload into out. A missing
// payload leaves out untouched.
func (e envelope) decodeData(out any) error {
	if len(e.Data) == 0 || out == nil {
		return nil
	}
	return json.Unmarshal(e.Data, out)
}
