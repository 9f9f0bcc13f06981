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

package lookup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `{
  "software": [
    {"UUID": "libzmq", "installPath": ["/usr/lib64/libzmq.so.5.2.6"],
     "metadata": [{"fileNameSymlinks": ["libzmq.so.5"]}]}
  ]
}`

func TestLookup(t *testing.T) {
	p := filepath.Join(t.TempDir(), "image.json")
	require.NoError(t, os.WriteFile(p, []byte(document), 0o644))

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{p, "/usr/lib64/libzmq.so.5", "/usr/lib64/missing.so"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "libzmq")
	assert.Contains(t, out.String(), "/usr/lib64/missing.so")

	cmd = New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{p, "/usr/lib64/LIBZMQ.so.5"})
	assert.Error(t, cmd.ExecuteContext(context.Background()))

	cmd = New()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--case-insensitive", p, "/usr/lib64/LIBZMQ.so.5"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "libzmq")
}
