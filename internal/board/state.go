package board

import (
	"encoding/json"
	"errors"
)

// ErrNoMessage is returned for a reply without a message key. An empty
// message is fine.
var ErrNoMessage = errors.New("response has no message")

// PointState is the server's view of one point.
type PointState struct {
	Color  string `json:"color"`
	Border string `json:"border"`
	Blink  bool   `json:"blink"`
}

// Response is one server reply, to /current/ and /turn/<name> alike.
type Response struct {
	Points  map[string]PointState `json:"points"`
	Message string                `json:"message"`
}

func (r *Response) UnmarshalJSON(b []byte) error {
	var raw struct {
		Points  map[string]PointState `json:"points"`
		Punkts  map[string]PointState `json:"punkts"`
		Message *string               `json:"message"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Points = raw.Points
	if r.Points == nil {
		r.Points = raw.Punkts
	}
	if raw.Message == nil {
		return ErrNoMessage
	}
	r.Message = *raw.Message
	return nil
}
