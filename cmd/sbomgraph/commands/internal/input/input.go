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

// Package input loads the SBOM documents named on the command line.
package input

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/venslabs/sbomgraph/pkg/outputhandler"
	"github.com/venslabs/sbomgraph/pkg/sbom"
)

// Input formats.
const (
	Auto      = "auto"
	JSON      = "json"
	CycloneDX = "cyclonedx"
)

// Formats lists the accepted values of --input-format.
var Formats = []string{Auto, JSON, CycloneDX}

// Format picks the format of path when format is Auto: files named
// *.cdx.json are CycloneDX, anything else is a sbomgraph JSON document.
func Format(path, format string) string {
	if format != "" && format != Auto {
		return format
	}
	if strings.HasSuffix(path, ".cdx.json") {
		return CycloneDX
	}
	return JSON
}

// Load decodes the document at path into a store whose filesystem graph is
// rebuilt and whose directory symlinks are expanded.
func Load(ctx context.Context, path, format string) (*sbom.SBOM, error) {
	format = Format(path, format)
	slog.DebugContext(ctx, "Loading SBOM", "path", path, "format", format)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var s *sbom.SBOM
	switch format {
	case JSON:
		s, err = sbom.Decode(f)
	case CycloneDX:
		s, err = outputhandler.ReadCycloneDX(f)
	default:
		return nil, fmt.Errorf("unknown input format %q (expected one of %v)", format, Formats)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	s.ExpandPendingDirSymlinks()
	return s, nil
}
