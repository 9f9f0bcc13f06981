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

// Package relationships turns per-format import metadata into Uses edges.
//
// Every resolver follows the same two phases for each import token. Phase 1
// probes locations derived from the subject's install paths through the
// filesystem graph. Phase 2, a format-specific legacy heuristic, runs only
// when Phase 1 found nothing for that token. Results are deduplicated per
// call and never point back at the subject.
//
// Resolvers only read the store. Establish adds what they return.
package relationships

import (
	"context"
	"log/slog"

	"github.com/venslabs/sbomgraph/pkg/sbom"
)

// Resolver derives Uses edges for one software entry from one of its
// metadata records. A record the resolver does not understand yields nil.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, s *sbom.SBOM, sw *sbom.Software, md sbom.Metadata) []sbom.Relationship
}

// Phase method labels, logged with every emitted edge.
const (
	methodStructural = "fs_tree"
	methodLegacy     = "legacy"
)

// emitter accumulates the edges of one Resolve call.
type emitter struct {
	format  string
	subject string
	seen    map[string]bool
	out     []sbom.Relationship
}

func newEmitter(format string, subject *sbom.Software) *emitter {
	return &emitter{format: format, subject: subject.UUID, seen: make(map[string]bool)}
}

// resolve runs both phases for token. structural and legacy return the
// candidate supplier UUIDs of their phase; legacy may be nil.
func (e *emitter) resolve(ctx context.Context, token string, structural, legacy func() []string) {
	method := methodStructural
	ids := e.filter(structural())
	if len(ids) == 0 && legacy != nil {
		method = methodLegacy
		ids = e.filter(legacy())
	}
	if len(ids) == 0 {
		slog.DebugContext(ctx, "relationships: no match", "format", e.format, "subject", e.subject, "token", token)
		return
	}
	for _, id := range ids {
		if e.seen[id] {
			continue
		}
		e.seen[id] = true
		e.out = append(e.out, sbom.Relationship{Subject: e.subject, Object: id, Kind: sbom.Uses})
		slog.DebugContext(ctx, "relationships: uses", "format", e.format, "subject", e.subject,
			"token", token, "object", id, "method", method)
	}
}

// filter drops empty IDs, the subject itself and repeats, keeping order.
func (e *emitter) filter(ids []string) []string {
	var out []string
	for _, id := range ids {
		if id == "" || id == e.subject {
			continue
		}
		dup := false
		for _, o := range out {
			if o == id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, id)
		}
	}
	return out
}

func (e *emitter) relationships(ctx context.Context) []sbom.Relationship {
	slog.DebugContext(ctx, "relationships: resolved", "format", e.format, "subject", e.subject, "edges", len(e.out))
	return e.out
}
