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

// Document is the persisted form of an SBOM. It carries no filesystem graph.
type Document struct {
	Software      []*Software    `json:"software"`
	Relationships []Relationship `json:"relationships"`
}

// Document returns the flattened export view of s. Symlink aliases are
// injected into entry metadata first, and only relationships between known
// entries are included.
func (s *SBOM) Document() *Document {
	s.InjectSymlinkMetadata()
	return &Document{
		Software:      s.Software(),
		Relationships: s.ExportRelationships(),
	}
}

// FromDocument builds a store from a persisted document and derives its
// filesystem graph.
func FromDocument(d *Document) (*SBOM, error) {
	s := New()
	for _, sw := range d.Software {
		if sw == nil {
			continue
		}
		if err := s.insert(sw); err != nil {
			return nil, err
		}
	}
	s.AddRelationships(d.Relationships...)
	s.Rebuild()
	return s, nil
}

// Encode writes the persisted document of s to w as indented JSON.
func Encode(w io.Writer, s *SBOM) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Document())
}

// Decode reads a persisted document from r and rebuilds the store. The
// software and relationship arrays are streamed; other top-level keys are
// skipped.
func Decode(r io.Reader) (*SBOM, error) {
	var d Document
	err := StreamDocument(r,
		func(sw *Software) error {
			d.Software = append(d.Software, sw)
			return nil
		},
		func(rel Relationship) error {
			d.Relationships = append(d.Relationships, rel)
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to decode SBOM document: %w", err)
	}
	return FromDocument(&d)
}
