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
	"fmt"
	"log/slog"

	"github.com/venslabs/sbomgraph/pkg/config"
	"github.com/venslabs/sbomgraph/pkg/sbom"
)

// Names lists the resolvers Default knows, in the order they run.
var Names = []string{"pe", "java"}

const legacyFallbackKey = "legacyFallback"

// Default builds the resolvers enabled by cfg. A nil cfg enables all of
// them with their default options.
func Default(cfg *config.Config) ([]Resolver, error) {
	if err := cfg.Validate(Names...); err != nil {
		return nil, err
	}
	var out []Resolver
	for _, name := range Names {
		if !cfg.Enabled(name) {
			slog.Debug("relationships: resolver disabled", "resolver", name)
			continue
		}
		legacy, err := cfg.PConfBool(name, legacyFallbackKey, true)
		if err != nil {
			return nil, err
		}
		switch name {
		case "pe":
			out = append(out, &PE{LegacyFallback: legacy})
		case "java":
			out = append(out, &Java{LegacyFallback: legacy})
		default:
			return nil, fmt.Errorf("unknown resolver %q", name)
		}
	}
	return out, nil
}

// Establish runs every resolver on every metadata record of every entry of
// s and stores the resulting edges. It returns the number of new edges.
// Pending directory symlinks must have been expanded before.
func Establish(ctx context.Context, s *sbom.SBOM, resolvers ...Resolver) (int, error) {
	added := 0
	for _, sw := range s.Software() {
		for _, md := range sw.Metadata {
			if md == nil {
				continue
			}
			for _, r := range resolvers {
				added += s.AddRelationships(r.Resolve(ctx, s, sw, md)...)
			}
		}
		if err := ctx.Err(); err != nil {
			return added, err
		}
	}
	slog.DebugContext(ctx, "relationships: established", "store", s.ID(), "added", added)
	return added, nil
}
