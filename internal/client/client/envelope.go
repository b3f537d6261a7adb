package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// envelope is the wire shape of every service response.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// decodeEnvelope parses body, renames keys to camelCase and binds the result.
func decodeEnvelope[T any](body []byte) (envelope[T], error) {
	var env envelope[T]

	var raw any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return env, fmt.Errorf("decode envelope: %w", err)
	}

	normalized, err := json.Marshal(CamelizeKeys(raw))
	if err != nil {
		return env, fmt.Errorf("re-encode envelope: %w", err)
	}
	if err := json.Unmarshal(normalized, &env); err != nil {
		return env, fmt.Errorf("bind envelope: %w", err)
	}
	return env, nil
}

// result converts the envelope into a tagged Result. A successful envelope
// with null data yields the zero value of T.
func (e envelope[T]) result() models.Result[T] {
	if !e.Success {
		return models.Fail[T](e.Message)
	}
	var data T
	if e.Data != nil {
		data = *e.Data
	}
	return models.Ok(data)
}

type tokenData struct {
	Token string `json:"token"`
}
