package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is a JSON object that preserves key insertion order when
// marshaled. Event payloads use it so the `event` discriminator and the
// host/role/task fields always appear in a predictable, readable order.
type Payload struct {
	keys   []string
	values map[string]interface{}
}

func NewPayload() *Payload {
	return &Payload{values: make(map[string]interface{})}
}

func (p *Payload) Set(key string, value interface{}) *Payload {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

func (p *Payload) Get(key string) (interface{}, bool) {
	value, ok := p.values[key]
	return value, ok
}

func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		encodedKey, err := marshalValue(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')

		encodedValue, err := marshalValue(p.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encodedValue)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalValue encodes without escaping HTML characters so message text
// passes through as written.
func marshalValue(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encodePayload renders a sanitized payload as JSON text. Task events
// use a compact single line to keep the transcript dense; everything
// else is indented. Encoding errors degrade to a quoted string rather
// than failing the run.
func encodePayload(payload *Payload, compact bool) string {
	data, err := marshalValue(payload)
	if err != nil {
		fallback, _ := json.Marshal(fmt.Sprintf("%v", payload.values))
		return string(fallback)
	}

	if compact {
		return string(data)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	return buf.String()
}
