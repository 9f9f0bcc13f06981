// Copyright 2026 venslabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sbom

import (
	"encoding/json"
	"fmt"
	"io"
)

// StreamDocument walks a persisted document with a token decoder and hands
// each element of the "software" and "relationships" arrays to the matching
// callback as soon as it is decoded. Either callback may be nil to skip that
// array. Every other top-level value is skipped without being decoded.
func StreamDocument(r io.Reader, onSoftware func(*Software) error, onRelationship func(Relationship) error) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("invalid SBOM JSON: expected object start")
	}

	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := t.(string)
		if !ok {
			return fmt.Errorf("invalid key token")
		}

		switch {
		case key == "software" && onSoftware != nil:
			err = streamArray(dec, key, func() error {
				var sw Software
				if err := dec.Decode(&sw); err != nil {
					return err
				}
				return onSoftware(&sw)
			})
		case key == "relationships" && onRelationship != nil:
			err = streamArray(dec, key, func() error {
				var rel Relationship
				if err := dec.Decode(&rel); err != nil {
					return err
				}
				return onRelationship(rel)
			})
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return err
		}
	}
	// Consume '}' of the root object
	_, err = dec.Token()
	return err
}

// streamArray enters the array value under key, calls each once per element
// and consumes the closing bracket. A JSON null is treated as empty.
func streamArray(dec *json.Decoder, key string, each func() error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return fmt.Errorf("invalid %s array", key)
	}
	for dec.More() {
		if err := each(); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// skipValue discards the value following the current key, whatever its
// shape.
func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}
