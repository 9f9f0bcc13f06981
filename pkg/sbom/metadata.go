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

package sbom

// Metadata keys written by the store itself. Every other key belongs to the
// extractor that produced the record.
const (
	// InstallPathSymlinksKey lists full paths that are aliases of the entry.
	InstallPathSymlinksKey = "installPathSymlinks"
	// FileNameSymlinksKey lists file names that are aliases of the entry in
	// each of its install directories.
	FileNameSymlinksKey = "fileNameSymlinks"
	// InstallPathSymlinkTargetsKey maps alias paths to their raw link
	// targets, for aliases that reach the entry only when path case is
	// ignored.
	InstallPathSymlinkTargetsKey = "installPathSymlinkTargets"
)

// Metadata is one extractor-defined record. The accessors never panic: a
// missing key or a value of the wrong shape reads as absent.
type Metadata map[string]any

// Has reports whether key is present, whatever its value.
func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Strings returns the string list stored under key. Lists decoded from JSON
// arrive as []any; non-string elements are skipped.
func (m Metadata) Strings(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Map returns the nested record stored under key, or nil.
func (m Metadata) Map(key string) Metadata {
	switch v := m[key].(type) {
	case Metadata:
		return v
	case map[string]any:
		return v
	}
	return nil
}

// StringMap returns the string-to-string mapping stored under key.
// Non-string values are skipped.
func (m Metadata) StringMap(key string) map[string]string {
	var src map[string]any
	switch v := m[key].(type) {
	case map[string]string:
		return v
	case Metadata:
		src = v
	case map[string]any:
		src = v
	default:
		return nil
	}
	out := make(map[string]string, len(src))
	for k, e := range src {
		if s, ok := e.(string); ok {
			out[k] = s
		}
	}
	return out
}

// setEntry sets key[k] = v in the mapping stored under key and reports
// whether that changed it.
func (m Metadata) setEntry(key, k, v string) bool {
	cur := m.StringMap(key)
	if old, ok := cur[k]; ok && old == v {
		return false
	}
	next := make(map[string]string, len(cur)+1)
	for ck, cv := range cur {
		next[ck] = cv
	}
	next[k] = v
	m[key] = next
	return true
}

// appendUnique adds values to the string list under key, skipping ones
// already present. It reports whether anything was added.
func (m Metadata) appendUnique(key string, values ...string) bool {
	cur := m.Strings(key)
	seen := make(map[string]bool, len(cur))
	for _, s := range cur {
		seen[s] = true
	}
	list := append([]string(nil), cur...)
	added := false
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			list = append(list, v)
			added = true
		}
	}
	if added {
		m[key] = list
	}
	return added
}
