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

package relationships

import (
	"context"
	"log/slog"

	"github.com/venslabs/sbomgraph/pkg/paths"
	"github.com/venslabs/sbomgraph/pkg/sbom"
)

// PE import metadata keys, in the order they are resolved.
var peImportFields = []string{"peImport", "peBoundImport", "peDelayImport"}

// PE resolves Windows DLL imports against the application directory of the
// importing binary, which is the part of the loader search order that static
// data can reproduce. API set contract names, KnownDLLs, side-by-side
// redirection and PATH search are not modeled; imports they would satisfy
// stay unresolved.
type PE struct {
	// LegacyFallback enables Phase 2.
	LegacyFallback bool
}

// NewPE returns a PE resolver with Phase 2 enabled.
func NewPE() *PE { return &PE{LegacyFallback: true} }

func (*PE) Name() string { return "pe" }

func (p *PE) Resolve(ctx context.Context, s *sbom.SBOM, sw *sbom.Software, md sbom.Metadata) []sbom.Relationship {
	present := false
	for _, f := range peImportFields {
		present = present || md.Has(f)
	}
	if !present {
		return nil
	}
	if len(sw.InstallPath) == 0 {
		slog.DebugContext(ctx, "relationships: no install path; skipping PE imports", "subject", sw.UUID, "name", sw.DisplayName())
		return nil
	}

	probeDirs := make([]string, 0, len(sw.InstallPath))
	for _, ip := range sw.InstallPath {
		probeDirs = append(probeDirs, paths.Dir(paths.Normalize(ip)))
	}

	e := newEmitter("pe", sw)
	for _, field := range peImportFields {
		imports := md.Strings(field)
		slog.DebugContext(ctx, "relationships: PE imports", "subject", sw.UUID, "field", field, "count", len(imports))
		for _, dll := range imports {
			if dll == "" {
				continue
			}
			var legacy func() []string
			if p.LegacyFallback {
				legacy = func() []string { return installedIn(s, probeDirs, dll) }
			}
			e.resolve(ctx, dll,
				func() []string {
					var ids []string
					for _, dir := range probeDirs {
						if dep, ok := s.SoftwareByPath(paths.Normalize(dir, dll), true); ok {
							ids = append(ids, dep.UUID)
						}
					}
					return ids
				},
				legacy,
			)
		}
	}
	return e.relationships(ctx)
}

// installedIn returns the entries with an install path equal, ignoring case,
// to dll inside one of dirs.
func installedIn(s *sbom.SBOM, dirs []string, dll string) []string {
	var ids []string
	for _, dir := range dirs {
		want := paths.Normalize(dir, dll)
		for _, cand := range s.Software() {
			for _, ip := range cand.InstallPath {
				if paths.EqualFold(paths.Normalize(ip), want) {
					ids = append(ids, cand.UUID)
					break
				}
			}
		}
	}
	return ids
}
