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

package outputhandler

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/CycloneDX/cyclonedx-go"
	"github.com/venslabs/sbomgraph/pkg/sbom"
)

// CycloneDX property names carrying the fields a component has no slot for.
const (
	PropertyInstallPath = "sbomgraph:installPath"
	PropertyFileName    = "sbomgraph:fileName"
	// PropertyMetadata holds one metadata record of the entry as JSON.
	PropertyMetadata    = "sbomgraph:metadata"
)

// NewCycloneDXOutputHandler returns an OutputHandler that merges every
// handled store into one CycloneDX BOM and emits it on Close. Entries become
// file components keyed by UUID and Uses edges become dependencies. Every
// metadata record, symlink aliases and import lists included, is kept as a
// JSON property so ReadCycloneDX can restore a store that resolves again.
func NewCycloneDXOutputHandler(w io.Writer) OutputHandler { return &cycloneDXWriter{w: w} }

type cycloneDXWriter struct {
	w      io.Writer
	comps  []cyclonedx.Component
	known  map[string]bool
	deps   map[string][]string
	refs   []string
	closed bool
}

func (c *cycloneDXWriter) HandleSBOM(s *sbom.SBOM) error {
	if c.known == nil {
		c.known = make(map[string]bool)
		c.deps = make(map[string][]string)
	}
	s.InjectSymlinkMetadata()
	for _, sw := range s.Software() {
		if c.known[sw.UUID] {
			continue
		}
		comp, err := component(sw)
		if err != nil {
			return err
		}
		c.known[sw.UUID] = true
		c.comps = append(c.comps, comp)
	}
	for _, r := range s.ExportRelationships() {
		if r.Kind != sbom.Uses {
			continue
		}
		if _, ok := c.deps[r.Subject]; !ok {
			c.refs = append(c.refs, r.Subject)
		}
		c.deps[r.Subject] = appendMissing(c.deps[r.Subject], r.Object)
	}
	return nil
}

func (c *cycloneDXWriter) Close() error {
	if c.closed {
		return nil
	}
	bom := cyclonedx.NewBOM()
	if len(c.comps) > 0 {
		bom.Components = &c.comps
	}
	if len(c.refs) > 0 {
		deps := make([]cyclonedx.Dependency, 0, len(c.refs))
		for _, ref := range c.refs {
			on := c.deps[ref]
			deps = append(deps, cyclonedx.Dependency{Ref: ref, Dependencies: &on})
		}
		bom.Dependencies = &deps
	}

	enc := cyclonedx.NewBOMEncoder(c.w, cyclonedx.BOMFileFormatJSON)
	enc.SetPretty(true)
	if err := enc.Encode(bom); err != nil {
		return fmt.Errorf("failed to encode CycloneDX BOM: %w", err)
	}
	c.closed = true
	return nil
}

func component(sw *sbom.Software) (cyclonedx.Component, error) {
	comp := cyclonedx.Component{
		BOMRef:      sw.UUID,
		Type:        cyclonedx.ComponentTypeFile,
		Name:        sw.DisplayName(),
		Version:     sw.Version,
		Publisher:   strings.Join(sw.Vendor, ", "),
		Description: sw.Description,
	}

	var hashes []cyclonedx.Hash
	for _, h := range []struct {
		alg   cyclonedx.HashAlgorithm
		value string
	}{
		{cyclonedx.HashAlgoSHA256, sw.SHA256},
		{cyclonedx.HashAlgoSHA1, sw.SHA1},
		{cyclonedx.HashAlgoMD5, sw.MD5},
	} {
		if h.value != "" {
			hashes = append(hashes, cyclonedx.Hash{Algorithm: h.alg, Value: h.value})
		}
	}
	if len(hashes) > 0 {
		comp.Hashes = &hashes
	}

	var props []cyclonedx.Property
	for _, ip := range sw.InstallPath {
		props = append(props, cyclonedx.Property{Name: PropertyInstallPath, Value: ip})
	}
	for _, fn := range sw.FileName {
		props = append(props, cyclonedx.Property{Name: PropertyFileName, Value: fn})
	}
	for _, md := range sw.Metadata {
		if len(md) == 0 {
			continue
		}
		b, err := json.Marshal(md)
		if err != nil {
			return cyclonedx.Component{}, fmt.Errorf("failed to encode metadata of %s: %w", sw.UUID, err)
		}
		props = append(props, cyclonedx.Property{Name: PropertyMetadata, Value: string(b)})
	}
	if len(props) > 0 {
		comp.Properties = &props
	}
	return comp, nil
}

func appendMissing(list []string, v string) []string {
	for _, e := range list {
		if e == v {
			return list
		}
	}
	return append(list, v)
}
