package store

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// headerSize is the width of the big-endian id counter.
const headerSize = 2

// MaxID is the largest id the 2-byte counter can hold.
const MaxID = 1<<(headerSize*8) - 1

// fileState is the decoded content of one type file.
type fileState struct {
	// counter is the last assigned id. Only valid when hasCounter is set.
	counter    uint16
	hasCounter bool

	// entities holds a Record for every JSON object element. Other elements
	// are kept as decoded so a rewrite reproduces them unchanged.
	entities []any
}

var (
	errShortHeader  = errors.New("file shorter than counter header")
	errNotArray     = errors.New("body is not a JSON array")
	errTrailingData = errors.New("trailing data after JSON array")
)

// marshalFile emits the counter (0 when undefined) followed by the JSON
// array of entities.
func marshalFile(st fileState) ([]byte, error) {
	entities := st.entities
	if entities == nil {
		entities = []any{}
	}

	var buf bytes.Buffer
	header := make([]byte, headerSize)
	if st.hasCounter {
		binary.BigEndian.PutUint16(header, st.counter)
	}
	buf.Write(header)

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entities); err != nil {
		return nil, fmt.Errorf("marshal entities: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	out := buf.Bytes()
	return out[:len(out)-1], nil
}

// unmarshalFile parses a decoded file. Empty input is a valid empty state
// with an undefined counter.
func unmarshalFile(data []byte) (fileState, error) {
	if len(data) == 0 {
		return fileState{entities: []any{}}, nil
	}
	if len(data) < headerSize {
		return fileState{}, errShortHeader
	}

	st := fileState{
		counter:    binary.BigEndian.Uint16(data[:headerSize]),
		hasCounter: true,
	}

	// Invalid UTF-8 inside strings decodes to U+FFFD.
	dec := json.NewDecoder(bytes.NewReader(data[headerSize:]))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fileState{}, fmt.Errorf("unmarshal entities: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fileState{}, errTrailingData
	}

	list, ok := raw.([]any)
	if !ok {
		return fileState{}, errNotArray
	}
	// Elements are not type-checked here; the domain layer rejects them.
	st.entities = make([]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			item = Record(obj)
		}
		st.entities = append(st.entities, item)
	}
	return st, nil
}
