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

package fstree

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

func execute(t *testing.T, out *bytes.Buffer, args ...string) error {
	t.Helper()
	cmd := New()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestFSTreeToStdout(t *testing.T) {
	in := filepath.Join(t.TempDir(), "image.json")
	require.NoError(t, os.WriteFile(in, []byte(document), 0o644))

	var out bytes.Buffer
	require.NoError(t, execute(t, &out, in))
	assert.Contains(t, out.String(), "digraph")
	assert.Contains(t, out.String(), `"/usr/lib64/libzmq.so.5"`)
	assert.Contains(t, out.String(), "dashed")
}

func TestFSTreeToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "image.json")
	require.NoError(t, os.WriteFile(in, []byte(document), 0o644))

	dot := filepath.Join(dir, "fstree.dot")
	var out bytes.Buffer
	require.NoError(t, execute(t, &out, "-o", dot, in))
	assert.Empty(t, out.String())
	b, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"/usr/lib64/libzmq.so.5.2.6"`)

	err = execute(t, &out, "-o", filepath.Join(dir, "missing", "fstree.dot"), in)
	assert.Error(t, err)
}
