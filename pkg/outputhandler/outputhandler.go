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

// Package outputhandler renders resolved stores.
package outputhandler

import (
	"fmt"
	"io"

	"github.com/venslabs/sbomgraph/pkg/sbom"
)

// Output formats accepted by New.
const (
	FormatJSON      = "json"
	FormatCycloneDX = "cyclonedx"
	FormatTable     = "table"
)

// Formats lists every output format.
var Formats = []string{FormatJSON, FormatCycloneDX, FormatTable}

// OutputHandler receives one or more stores and writes them out. Handlers
// that merge their input write nothing until Close.
type OutputHandler interface {
	HandleSBOM(*sbom.SBOM) error
	Close() error
}

// New returns the handler for format writing to w.
func New(format string, w io.Writer) (OutputHandler, error) {
	switch format {
	case FormatJSON:
		return NewJSONOutputHandler(w), nil
	case FormatCycloneDX:
		return NewCycloneDXOutputHandler(w), nil
	case FormatTable:
		return NewTableOutputHandler(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected one of %v)", format, Formats)
	}
}

// Extension returns the file extension used for format in an output
// directory.
func Extension(format string) string {
	switch format {
	case FormatCycloneDX:
		return ".cdx.json"
	case FormatTable:
		return ".txt"
	default:
		return ".json"
	}
}
