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
	"slices"
	"strings"
	"sync"

	"github.com/venslabs/sbomgraph/pkg/paths"
	"github.com/venslabs/sbomgraph/pkg/sbom"
)

const (
	javaClassesKey = "javaClasses"
	javaExportsKey = "javaExports"
	javaImportsKey = "javaImports"
)

// Java resolves class-level imports. Phase 1 looks for the imported class
// file under the class roots of the importer. Phase 2 looks the class name
// up in an index of every export declared in the store.
//
// A Java resolver may be shared by goroutines that each work on their own
// store, but it keeps a single index: alternating stores rebuilds it each
// time.
type Java struct {
	// LegacyFallback enables Phase 2.
	LegacyFallback bool

	mu  sync.Mutex
	idx exportIndex
}

// exportIndex maps an exported class name to the UUID of the entry
// declaring it. It is valid for one revision of one store and never holds a
// reference to the store itself.
type exportIndex struct {
	storeID   uint64
	revision  uint64
	suppliers map[string]string
	builds    int
}

// NewJava returns a Java resolver with Phase 2 enabled.
func NewJava() *Java { return &Java{LegacyFallback: true} }

func (*Java) Name() string { return "java" }

func (j *Java) Resolve(ctx context.Context, s *sbom.SBOM, sw *sbom.Software, md sbom.Metadata) []sbom.Relationship {
	classes := md.Map(javaClassesKey)
	if classes == nil {
		return nil
	}

	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	slices.Sort(names)
	roots := classRoots(sw, names)

	e := newEmitter("java", sw)
	for _, name := range names {
		for _, imp := range classes.Map(name).Strings(javaImportsKey) {
			if imp == "" {
				continue
			}
			var legacy func() []string
			if j.LegacyFallback {
				legacy = func() []string {
					if id, ok := j.supplier(ctx, s, imp); ok {
						return []string{id}
					}
					return nil
				}
			}
			e.resolve(ctx, imp,
				func() []string {
					rel := classFile(imp)
					var ids []string
					for _, root := range roots {
						if dep, ok := s.SoftwareByPath(paths.Normalize(root, rel), false); ok {
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

// supplier returns the entry exporting class name, indexing s first if the
// index was built from another store or an older revision of s.
func (j *Java) supplier(ctx context.Context, s *sbom.SBOM, name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.idx.suppliers == nil || j.idx.storeID != s.ID() || j.idx.revision != s.Revision() {
		j.idx.rebuild(s)
		slog.DebugContext(ctx, "relationships: indexed Java exports",
			"store", s.ID(), "revision", s.Revision(), "exports", len(j.idx.suppliers))
	}
	id, ok := j.idx.suppliers[name]
	return id, ok
}

// rebuild scans every entry with an install path for declared exports. On
// duplicate exports the entry added last wins.
func (x *exportIndex) rebuild(s *sbom.SBOM) {
	x.storeID, x.revision = s.ID(), s.Revision()
	x.suppliers = make(map[string]string)
	x.builds++
	for _, sw := range s.Software() {
		if len(sw.InstallPath) == 0 {
			continue
		}
		for _, md := range sw.Metadata {
			classes := md.Map(javaClassesKey)
			for name := range classes {
				for _, export := range classes.Map(name).Strings(javaExportsKey) {
					x.suppliers[export] = sw.UUID
				}
			}
		}
	}
}

// classFile maps a binary class name to its path below a class root:
// com.example.Main becomes com/example/Main.class.
func classFile(name string) string {
	return strings.ReplaceAll(name, ".", "/") + ".class"
}

// classRoots lists the directories the imports of sw are probed under: the
// root implied by an install path that ends with the class file of one of
// its own classes, then each install path's parent directory.
func classRoots(sw *sbom.Software, classes []string) []string {
	var roots []string
	add := func(r string) {
		if !slices.Contains(roots, r) {
			roots = append(roots, r)
		}
	}
	for _, ip := range sw.InstallPath {
		ip = paths.Normalize(ip)
		for _, c := range classes {
			if rest, ok := strings.CutSuffix(ip, "/"+classFile(c)); ok {
				if rest == "" {
					rest = "/"
				}
				add(rest)
			}
		}
	}
	for _, ip := range sw.InstallPath {
		add(paths.Dir(ip))
	}
	return roots
}
