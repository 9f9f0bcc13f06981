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

import "github.com/venslabs/sbomgraph/pkg/paths"

// RelationshipKind names the meaning of a Relationship.
type RelationshipKind string

const (
	// Uses means the subject depends on the object at load or link time.
	Uses RelationshipKind = "Uses"
	// Contains means the subject (an archive or installer) holds the object.
	Contains RelationshipKind = "Contains"
)

// Relationship is a directed edge between two software entries. It is
// comparable; two relationships with the same fields are the same edge.
type Relationship struct {
	Subject string           `json:"xUUID"`
	Object  string           `json:"yUUID"`
	Kind    RelationshipKind `json:"relationship"`
}

// Software is one component identity in the SBOM.
//
// UUID is fixed once the entry is added to a store. Metadata records are
// produced by extractors and only read by key; records may be appended later
// (see SBOM.InjectSymlinkMetadata).
type Software struct {
	UUID          string     `json:"UUID"`
	Name          string     `json:"name,omitempty"`
	Version       string     `json:"version,omitempty"`
	Vendor        []string   `json:"vendor,omitempty"`
	Description   string     `json:"description,omitempty"`
	Size          int64      `json:"size,omitempty"`
	CaptureTime   int64      `json:"captureTime,omitempty"`
	FileName      []string   `json:"fileName,omitempty"`
	InstallPath   []string   `json:"installPath,omitempty"`
	ContainerPath []string   `json:"containerPath,omitempty"`
	SHA1          string     `json:"sha1,omitempty"`
	SHA256        string     `json:"sha256,omitempty"`
	MD5           string     `json:"md5,omitempty"`
	Metadata      []Metadata `json:"metadata,omitempty"`
}

// DisplayName returns Name, falling back to the first file name and then
// the UUID.
func (sw *Software) DisplayName() string {
	switch {
	case sw.Name != "":
		return sw.Name
	case len(sw.FileName) > 0:
		return sw.FileName[0]
	}
	return sw.UUID
}

// HasInstallPath reports whether p, once normalized, is one of the entry's
// install paths.
func (sw *Software) HasInstallPath(p string) bool {
	p = paths.Normalize(p)
	for _, ip := range sw.InstallPath {
		if paths.Normalize(ip) == p {
			return true
		}
	}
	return false
}
