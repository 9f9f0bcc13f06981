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

// Package paths canonicalizes install paths into the single forward-slash
// form used by the filesystem graph. Case is never changed here; case folding
// is a lookup concern (see Fold).
package paths

import "strings"

// Normalize converts backslashes to forward slashes and joins the given
// elements, so Normalize(dir, name) is the path of name inside dir.
// An element that is itself absolute, either slash-rooted or drive-rooted
// like C:/x, discards everything before it.
// Empty and "." segments and repeated slashes are dropped; ".." is kept
// because it cannot be resolved lexically across symlinks. A UNC prefix
// therefore collapses: \\server\share becomes /server/share.
func Normalize(elems ...string) string {
	abs := false
	var segs []string
	for _, e := range elems {
		e = strings.ReplaceAll(e, `\`, "/")
		if e == "" {
			continue
		}
		switch {
		case strings.HasPrefix(e, "/"):
			abs = true
			segs = segs[:0]
		case isDrive(e):
			abs = false
			segs = segs[:0]
		}
		for _, s := range strings.Split(e, "/") {
			if s == "" || s == "." {
				continue
			}
			segs = append(segs, s)
		}
	}
	out := strings.Join(segs, "/")
	if abs {
		return "/" + out
	}
	return out
}

// isDrive reports whether e starts with a drive letter root such as "C:"
// or "C:/".
func isDrive(e string) bool {
	if len(e) < 2 || e[1] != ':' {
		return false
	}
	c := e[0]
	if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
		return false
	}
	return len(e) == 2 || e[2] == '/'
}

// Dir returns the parent directory of p in normalized form, treating p as a
// Windows or POSIX path alike. The parent of a drive-rooted file such as
// C:\run.exe is "C:/".
func Dir(p string) string {
	p = Normalize(p)
	i := strings.LastIndex(p, "/")
	switch {
	case i < 0:
		return "."
	case i == 0:
		return "/"
	}
	d := p[:i]
	if strings.HasSuffix(d, ":") && !strings.Contains(d, "/") {
		d += "/"
	}
	return d
}

// Base returns the last element of p.
func Base(p string) string {
	p = Normalize(p)
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// Lineage returns every prefix of p, outermost first and ending with p
// itself: "/usr/bin/ls" yields "/", "/usr", "/usr/bin", "/usr/bin/ls".
func Lineage(p string) []string {
	p = Normalize(p)
	if p == "" {
		return nil
	}
	var out []string
	if strings.HasPrefix(p, "/") {
		out = append(out, "/")
		if p == "/" {
			return out
		}
	}
	for i := 1; i < len(p); i++ {
		if p[i] == '/' {
			out = append(out, p[:i])
		}
	}
	return append(out, p)
}

// Fold returns the case-insensitive comparison key for an already
// normalized path.
func Fold(p string) string {
	return strings.ToLower(p)
}

// EqualFold reports whether two paths name the same file under
// case-insensitive (Windows) semantics.
func EqualFold(a, b string) bool {
	return strings.EqualFold(Normalize(a), Normalize(b))
}
