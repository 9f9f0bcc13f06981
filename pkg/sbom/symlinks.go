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
	"log/slog"

	"github.com/venslabs/sbomgraph/pkg/fstree"
	"github.com/venslabs/sbomgraph/pkg/paths"
)

// InjectSymlinkMetadata writes every alias edge of the filesystem graph that
// resolves to an entry into that entry's metadata, so the edge can be
// rebuilt from the entry alone. The full alias path goes to the
// installPathSymlinks record. For an entry with a single install path, an
// alias in the same directory also has its file name recorded under
// fileNameSymlinks; with several install paths that record would alias every
// install directory on rebuild, so it is not written.
// An alias that reaches an entry only when case is ignored is kept with its
// raw target under installPathSymlinkTargets, so that the rebuilt edge still
// fails case-sensitive lookups. Aliases that resolve to nothing are dropped.
// Calling it again adds nothing new.
func (s *SBOM) InjectSymlinkMetadata() {
	injected := 0
	for _, l := range s.tree.Links() {
		id, ok := s.tree.Resolve(l.Source, false)
		if !ok {
			if s.injectFoldedAlias(l) {
				injected++
			}
			continue
		}
		sw, ok := s.byUUID[id]
		if !ok || sw.HasInstallPath(l.Source) {
			continue
		}
		if symlinkRecord(sw, InstallPathSymlinksKey).appendUnique(InstallPathSymlinksKey, l.Source) {
			injected++
		}
		if len(sw.InstallPath) == 1 && paths.Dir(sw.InstallPath[0]) == paths.Dir(l.Source) {
			symlinkRecord(sw, FileNameSymlinksKey).appendUnique(FileNameSymlinksKey, paths.Base(l.Source))
		}
	}
	if injected > 0 {
		slog.Debug("sbom: injected symlink metadata", "aliases", injected)
	}
}

// injectFoldedAlias records l on the entry it reaches under case folding.
func (s *SBOM) injectFoldedAlias(l fstree.Link) bool {
	id, ok := s.tree.Resolve(l.Source, true)
	if !ok {
		return false
	}
	sw, ok := s.byUUID[id]
	if !ok || sw.HasInstallPath(l.Source) {
		return false
	}
	return symlinkRecord(sw, InstallPathSymlinkTargetsKey).setEntry(InstallPathSymlinkTargetsKey, l.Source, l.Target)
}

// symlinkRecord returns the metadata record of sw holding key, appending a
// new one if there is none.
func symlinkRecord(sw *Software, key string) Metadata {
	for _, md := range sw.Metadata {
		if md != nil && md.Has(key) {
			return md
		}
	}
	md := Metadata{}
	sw.Metadata = append(sw.Metadata, md)
	return md
}
