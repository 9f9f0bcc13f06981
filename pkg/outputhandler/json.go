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

	"github.com/venslabs/sbomgraph/pkg/sbom"
)

type jsonOutputHandler struct {
	w io.Writer
}

// NewJSONOutputHandler returns an OutputHandler that writes each store as a
// persisted document as soon as it is handled.
func NewJSONOutputHandler(w io.Writer) OutputHandler {
	return &jsonOutputHandler{w: w}
}

func (h *jsonOutputHandler) HandleSBOM(s *sbom.SBOM) error {
	return sbom.Encode(h.w, s)
}

func (h *jsonOutputHandler) Close() error { return nil }
