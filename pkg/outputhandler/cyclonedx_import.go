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

	"github.com/CycloneDX/cyclonedx-go"
	"github.com/venslabs/sbomgraph/pkg/sbom"
)

// ReadCycloneDX builds a store from a CycloneDX JSON BOM, such as one written
// by the CycloneDX output handler. File components become software entries:
// the BOM ref is the UUID and the sbomgraph properties restore install paths,
// file names and metadata records. Dependencies become Uses edges. Other component types are
// ignored.
func ReadCycloneDX(r io.Reader) (*sbom.SBOM, error) {
	var bom cyclonedx.BOM
	if err := cyclonedx.NewBOMDecoder(r, cyclonedx.BOMFileFormatJSON).Decode(&bom); err != nil {
		return nil, fmt.Errorf("failed to decode CycloneDX BOM: %w", err)
	}

	d := &sbom.Document{}
	if bom.Components != nil {
		for _, comp := range *bom.Components {
			if comp.Type != cyclonedx.ComponentTypeFile {
				continue
			}
			sw, err := software(comp)
			if err != nil {
				return nil, err
			}
			d.Software = append(d.Software, sw)
		}
	}
	if bom.Dependencies != nil {
		for _, dep := range *bom.Dependencies {
			if dep.Dependencies == nil {
				continue
			}
			for _, on := range *dep.Dependencies {
				d.Relationships = append(d.Relationships, sbom.Relationship{Subject: dep.Ref, Object: on, Kind: sbom.Uses})
			}
		}
	}
	return sbom.FromDocument(d)
}

func software(comp cyclonedx.Component) (*sbom.Software, error) {
	sw := &sbom.Software{
		UUID:        comp.BOMRef,
		Name:        comp.Name,
		Version:     comp.Version,
		Description: comp.Description,
	}
	if comp.Publisher != "" {
		sw.Vendor = []string{comp.Publisher}
	}
	if comp.Hashes != nil {
		for _, h := range *comp.Hashes {
			switch h.Algorithm {
			case cyclonedx.HashAlgoSHA256:
				sw.SHA256 = h.Value
			case cyclonedx.HashAlgoSHA1:
				sw.SHA1 = h.Value
			case cyclonedx.HashAlgoMD5:
				sw.MD5 = h.Value
			}
		}
	}
	if comp.Properties != nil {
		for _, p := range *comp.Properties {
			switch p.Name {
			case PropertyInstallPath:
				sw.InstallPath = append(sw.InstallPath, p.Value)
			case PropertyFileName:
				sw.FileName = append(sw.FileName, p.Value)
			case PropertyMetadata:
				var md sbom.Metadata
				if err := json.Unmarshal([]byte(p.Value), &md); err != nil {
					return nil, fmt.Errorf("invalid %s property on %s: %w", PropertyMetadata, comp.BOMRef, err)
				}
				sw.Metadata = append(sw.Metadata, md)
			}
		}
	}
	return sw, nil
}
