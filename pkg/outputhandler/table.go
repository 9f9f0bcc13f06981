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
	"io"
	"os"
	"strings"

	"github.com/aquasecurity/table"
	"github.com/aquasecurity/tml"
	"github.com/venslabs/sbomgraph/pkg/sbom"
)

type row struct {
	subject, object *sbom.Software
	kind            sbom.RelationshipKind
}

type tableOutputHandler struct {
	w    io.Writer
	rows []row
}

// NewTableOutputHandler returns an OutputHandler that renders every exported
// relationship of every handled store as one table on Close.
func NewTableOutputHandler(w io.Writer) OutputHandler {
	if w == nil {
		w = os.Stdout
	}
	return &tableOutputHandler{w: w}
}

func (h *tableOutputHandler) HandleSBOM(s *sbom.SBOM) error {
	for _, r := range s.ExportRelationships() {
		x, _ := s.FindSoftware(r.Subject)
		y, _ := s.FindSoftware(r.Object)
		h.rows = append(h.rows, row{subject: x, object: y, kind: r.Kind})
	}
	return nil
}

func (h *tableOutputHandler) Close() error {
	if len(h.rows) == 0 {
		return nil
	}

	t := table.New(h.w)
	t.SetHeaders("Subject", "Relationship", "Object", "Object Install Path")
	for _, r := range h.rows {
		t.AddRow(
			r.subject.DisplayName(),
			colorKind(r.kind),
			r.object.DisplayName(),
			strings.Join(r.object.InstallPath, "\n"),
		)
	}
	t.Render()
	return nil
}

func colorKind(kind sbom.RelationshipKind) string {
	switch kind {
	case sbom.Uses:
		return tml.Sprintf("<green>Uses</green>")
	case sbom.Contains:
		return tml.Sprintf("<blue>Contains</blue>")
	default:
		return string(kind)
	}
}
