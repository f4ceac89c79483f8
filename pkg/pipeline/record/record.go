// Package record is the boundary between host-supplied structured records and
// the plain-string transforms. Only the content field is ever rewritten.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ContentField is the key holding the text a transform operates on.
const ContentField = "content"

var (
	// ErrMissingContent is returned when a record has no content field.
	ErrMissingContent = errors.New("record has no content field")
	// ErrContentNotString is returned when the content field is not a JSON string.
	ErrContentNotString = errors.New("record content is not a string")
)

// Record is one decoded host record. Fields other than content are opaque.
type Record map[string]any

// Decode parses a JSON object into a Record. Numbers are kept as json.Number
// so snowflake ids survive a round trip.
func Decode(raw []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("decode record: %w", ErrMissingContent)
	}
	return rec, nil
}

// Encode serializes r back to JSON without HTML escaping, so wrapper markup
// in content stays readable.
func (r Record) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Content returns the text of the content field.
func (r Record) Content() (string, error) {
	v, ok := r[ContentField]
	if !ok {
		return "", ErrMissingContent
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: got %T", ErrContentNotString, v)
	}
	return s, nil
}

// SetContent replaces the content field.
func (r Record) SetContent(text string) {
	r[ContentField] = text
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Transform returns a copy of r with fn applied to its content.
func (r Record) Transform(fn func(string) string) (Record, error) {
	text, err := r.Content()
	if err != nil {
		return nil, err
	}
	out := r.Clone()
	out.SetContent(fn(text))
	return out, nil
}

// Apply decodes raw, rewrites its content with fn, and encodes the result.
func Apply(raw []byte, fn func(string) string) ([]byte, error) {
	rec, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	out, err := rec.Transform(fn)
	if err != nil {
		return nil, err
	}
	return out.Encode()
}
