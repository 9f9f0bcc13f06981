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

// Package sbom holds the software entries and relationships of one analyzed
// artifact, together with the filesystem graph derived from their install
// paths.
//
// The filesystem graph is never persisted. Encode writes only entries and
// relationships, and Decode derives the graph again from install paths and
// the symlink alias metadata embedded in each entry (see Rebuild).
//
// An SBOM is built in a single pass: add every entry and record every
// symlink, call ExpandPendingDirSymlinks once, then resolve relationships.
// It is not safe for concurrent use; process independent documents with
// independent SBOMs.
package sbom

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/venslabs/sbomgraph/pkg/fstree"
	"github.com/venslabs/sbomgraph/pkg/paths"
)

// ErrDuplicateUUID is returned when an entry's UUID is already in the store.
var ErrDuplicateUUID = errors.New("duplicate software UUID")

var lastID atomic.Uint64

// SBOM is the store.
type SBOM struct {
	id  uint64
	rev uint64

	software []*Software
	byUUID   map[string]*Software

	relationships []Relationship
	relSet        map[Relationship]struct{}

	tree *fstree.Tree
}

// New returns an empty store.
func New() *SBOM {
	return &SBOM{
		id:     lastID.Add(1),
		byUUID: make(map[string]*Software),
		relSet: make(map[Relationship]struct{}),
		tree:   fstree.New(),
	}
}

// ID identifies this store instance for the lifetime of the process. Caches
// derived from a store key on ID and Revision instead of holding the store.
func (s *SBOM) ID() uint64 { return s.id }

// Revision increases every time an entry is added.
func (s *SBOM) Revision() uint64 { return s.rev }

func (s *SBOM) insert(sw *Software) error {
	if sw.UUID == "" {
		sw.UUID = uuid.NewString()
	}
	if _, ok := s.byUUID[sw.UUID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateUUID, sw.UUID)
	}
	s.software = append(s.software, sw)
	s.byUUID[sw.UUID] = sw
	s.rev++
	return nil
}

// AddSoftware inserts sw and adds its install paths, tagged with its UUID,
// to the filesystem graph. An entry without a UUID is assigned a random one.
func (s *SBOM) AddSoftware(sw *Software) error {
	if err := s.insert(sw); err != nil {
		return err
	}
	s.addToTree(sw)
	return nil
}

// Software returns the entries in insertion order.
func (s *SBOM) Software() []*Software {
	return append([]*Software(nil), s.software...)
}

// FindSoftware returns the entry with the given UUID.
func (s *SBOM) FindSoftware(id string) (*Software, bool) {
	sw, ok := s.byUUID[id]
	return sw, ok
}

// AddRelationship stores r unless an identical edge is already present,
// and reports whether it was added.
func (s *SBOM) AddRelationship(r Relationship) bool {
	if _, ok := s.relSet[r]; ok {
		return false
	}
	s.relSet[r] = struct{}{}
	s.relationships = append(s.relationships, r)
	return true
}

// AddRelationships stores each of rs and returns how many were new.
func (s *SBOM) AddRelationships(rs ...Relationship) int {
	n := 0
	for _, r := range rs {
		if s.AddRelationship(r) {
			n++
		}
	}
	return n
}

// HasRelationship reports whether r is stored.
func (s *SBOM) HasRelationship(r Relationship) bool {
	_, ok := s.relSet[r]
	return ok
}

// Relationships returns every stored edge in insertion order.
func (s *SBOM) Relationships() []Relationship {
	return append([]Relationship(nil), s.relationships...)
}

// ExportRelationships returns the stored edges whose endpoints are both
// software entries. Edges naming anything else, such as a bare filesystem
// path, never leave the store.
func (s *SBOM) ExportRelationships() []Relationship {
	out := make([]Relationship, 0, len(s.relationships))
	for _, r := range s.relationships {
		_, okX := s.byUUID[r.Subject]
		_, okY := s.byUUID[r.Object]
		if okX && okY {
			out = append(out, r)
		}
	}
	return out
}

// RecordSymlink records that source is a symlink to target. Directory links
// are chained to the target's descendants by ExpandPendingDirSymlinks.
func (s *SBOM) RecordSymlink(source, target string, kind fstree.LinkKind) {
	s.tree.AddSymlink(source, target, kind)
}

// ExpandPendingDirSymlinks synthesizes the chained edges for every directory
// symlink recorded so far. It must run after all entries and symlinks are
// recorded and before any relationship is resolved.
func (s *SBOM) ExpandPendingDirSymlinks() {
	s.tree.ExpandPendingDirSymlinks()
}

// SoftwareByPath returns the entry installed at p, following symlink
// aliases. With caseInsensitive, path case is ignored as on Windows.
func (s *SBOM) SoftwareByPath(p string, caseInsensitive bool) (*Software, bool) {
	id, ok := s.tree.Resolve(p, caseInsensitive)
	if !ok {
		return nil, false
	}
	return s.FindSoftware(id)
}

// FSTree exposes the filesystem graph for inspection.
func (s *SBOM) FSTree() *fstree.Tree { return s.tree }

// Rebuild discards the filesystem graph and derives it again from the
// entries alone. Recorded symlinks are first folded into entry metadata by
// InjectSymlinkMetadata so that the rebuilt graph resolves every path the
// old one did. Directory symlinks still pending expansion are lost.
func (s *SBOM) Rebuild() {
	s.InjectSymlinkMetadata()
	s.tree = fstree.New()
	for _, sw := range s.software {
		s.addToTree(sw)
	}
}

// addToTree adds the install paths of sw and the aliases declared by its
// symlink metadata records. Raw alias targets are added in sorted order so
// rebuilds are deterministic.
func (s *SBOM) addToTree(sw *Software) {
	for _, ip := range sw.InstallPath {
		s.tree.AddPath(ip, sw.UUID)
	}
	if len(sw.InstallPath) == 0 {
		return
	}
	for _, md := range sw.Metadata {
		for _, link := range md.Strings(InstallPathSymlinksKey) {
			if !sw.HasInstallPath(link) {
				s.tree.AddSymlink(link, aliasTarget(sw, link), fstree.File)
			}
		}
		targets := md.StringMap(InstallPathSymlinkTargetsKey)
		for _, link := range slices.Sorted(maps.Keys(targets)) {
			s.tree.AddSymlink(link, targets[link], fstree.File)
		}
		for _, name := range md.Strings(FileNameSymlinksKey) {
			for _, ip := range sw.InstallPath {
				if link := paths.Normalize(paths.Dir(ip), name); link != paths.Normalize(ip) {
					s.tree.AddSymlink(link, ip, fstree.File)
				}
			}
		}
	}
}

// aliasTarget picks the install path an alias at link points to: the one in
// the same directory, else the first.
func aliasTarget(sw *Software, link string) string {
	dir := paths.Dir(link)
	for _, ip := range sw.InstallPath {
		if paths.Dir(ip) == dir {
			return ip
		}
	}
	return sw.InstallPath[0]
}
