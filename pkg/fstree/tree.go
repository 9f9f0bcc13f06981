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

// Package fstree implements the filesystem graph that maps install paths to
// software identities.
//
// Nodes are normalized paths. Two kinds of directed edges connect them:
// containment edges (parent directory -> child) created implicitly by
// AddPath, and alias edges (symlink source -> target) created by AddSymlink.
// A node may carry the UUID of the software installed at that path.
//
// Directory symlinks are two-pass: AddSymlink only queues them, and
// ExpandPendingDirSymlinks later synthesizes one alias edge per descendant of
// the target that is known at that point. Call it once after every path and
// symlink has been recorded and before resolving anything through a
// directory alias.
//
// A Tree is not safe for concurrent use.
package fstree

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/venslabs/sbomgraph/pkg/paths"
)

// LinkKind distinguishes file symlinks from directory symlinks.
type LinkKind string

const (
	File      LinkKind = "file"
	Directory LinkKind = "directory"
)

const (
	edgeTypeKey     = "type"
	edgeTypeParent  = "parent"
	edgeTypeSymlink = "symlink"
)

// Link is an alias edge from a symlink source to its target.
type Link struct {
	Source string
	Target string
}

// Tree is the filesystem graph.
type Tree struct {
	g graph.Graph[string, string]

	owners   map[string]string
	children map[string][]string
	aliases  map[string][]string
	links    []Link
	folded   map[string][]string
	pending  []Link
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{
		g:        graph.New(graph.StringHash, graph.Directed()),
		owners:   make(map[string]string),
		children: make(map[string][]string),
		aliases:  make(map[string][]string),
		folded:   make(map[string][]string),
	}
}

func (t *Tree) addNode(p string) bool {
	if err := t.g.AddVertex(p); err != nil {
		return false
	}
	k := paths.Fold(p)
	t.folded[k] = append(t.folded[k], p)
	return true
}

func (t *Tree) addEdge(from, to, typ string) {
	err := t.g.AddEdge(from, to,
		graph.EdgeAttribute(edgeTypeKey, typ),
		graph.EdgeAttribute("style", edgeStyle(typ)),
	)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		slog.Debug("fstree: edge not stored", "from", from, "to", to, "type", typ, "error", err)
	}
}

func edgeStyle(typ string) string {
	if typ == edgeTypeSymlink {
		return "dashed"
	}
	return "solid"
}

// ensure inserts p and every directory above it, linked by containment
// edges. It is idempotent.
func (t *Tree) ensure(p string) {
	var prev string
	for _, seg := range paths.Lineage(p) {
		if t.addNode(seg) && prev != "" {
			t.children[prev] = append(t.children[prev], seg)
			t.addEdge(prev, seg, edgeTypeParent)
		}
		prev = seg
	}
}

// AddPath inserts p with its directory chain. A non-empty owner tags the
// terminal node. Tagging is last-write-wins: a second AddPath of the same
// path with a different owner replaces the first, and the overwrite is
// logged because it usually means two entries claim one install path.
func (t *Tree) AddPath(p, owner string) {
	p = paths.Normalize(p)
	if p == "" {
		return
	}
	t.ensure(p)
	if owner == "" {
		return
	}
	if prev, ok := t.owners[p]; ok && prev != owner {
		slog.Warn("fstree: install path claimed by more than one software entry; keeping the latest",
			"path", p, "previous", prev, "owner", owner)
	}
	t.owners[p] = owner
}

// AddSymlink records an alias edge source -> target. Directory links are
// additionally queued for ExpandPendingDirSymlinks.
func (t *Tree) AddSymlink(source, target string, kind LinkKind) {
	source, target = paths.Normalize(source), paths.Normalize(target)
	if source == "" || target == "" {
		return
	}
	t.link(source, target)
	if kind == Directory {
		t.pending = append(t.pending, Link{Source: source, Target: target})
	}
}

func (t *Tree) link(source, target string) {
	t.ensure(source)
	t.ensure(target)
	for _, existing := range t.aliases[source] {
		if existing == target {
			return
		}
	}
	t.aliases[source] = append(t.aliases[source], target)
	t.links = append(t.links, Link{Source: source, Target: target})
	t.addEdge(source, target, edgeTypeSymlink)
}

// ExpandPendingDirSymlinks drains the directory symlink queue. For each
// queued source -> target it adds source/rel -> target/rel for every
// containment descendant target/rel present now. Descendants added later are
// not chained.
func (t *Tree) ExpandPendingDirSymlinks() {
	queue := t.pending
	t.pending = nil
	for _, l := range queue {
		descendants := t.descendants(l.Target)
		for _, d := range descendants {
			rel := strings.TrimPrefix(strings.TrimPrefix(d, l.Target), "/")
			t.link(paths.Normalize(l.Source, rel), d)
		}
		slog.Debug("fstree: expanded directory symlink",
			"source", l.Source, "target", l.Target, "edges", len(descendants))
	}
}

// PendingDirSymlinks returns the number of queued directory symlinks.
func (t *Tree) PendingDirSymlinks() int { return len(t.pending) }

// descendants snapshots the containment subtree below root.
func (t *Tree) descendants(root string) []string {
	var out []string
	seen := map[string]bool{root: true}
	queue := append([]string(nil), t.children[root]...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
		queue = append(queue, t.children[n]...)
	}
	return out
}

// Resolve returns the UUID owning p, following alias edges from p until a
// tagged node is reached. A node visited twice in one call ends that branch,
// so alias cycles resolve to no match. With caseInsensitive, nodes are
// matched on their folded form, as on Windows filesystems.
func (t *Tree) Resolve(p string, caseInsensitive bool) (string, bool) {
	p = paths.Normalize(p)
	if p == "" {
		return "", false
	}
	var stack []string
	push := func(nodes []string) {
		for i := len(nodes) - 1; i >= 0; i-- {
			stack = append(stack, nodes[i])
		}
	}
	push(t.candidates(p, caseInsensitive))
	visited := make(map[string]bool)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if owner, ok := t.owners[cur]; ok {
			return owner, true
		}
		var next []string
		for _, target := range t.aliases[cur] {
			for _, n := range t.candidates(target, caseInsensitive) {
				if !visited[n] {
					next = append(next, n)
				}
			}
		}
		push(next)
	}
	return "", false
}

// candidates lists the nodes p may denote in the order they are tried: p
// itself when it is a node, then, when folding case, every other node with
// the same folded form in insertion order.
func (t *Tree) candidates(p string, caseInsensitive bool) []string {
	var out []string
	if t.HasNode(p) {
		out = append(out, p)
	}
	if caseInsensitive {
		for _, n := range t.folded[paths.Fold(p)] {
			if n != p {
				out = append(out, n)
			}
		}
	}
	return out
}

// Owner returns the UUID tagged on exactly p, without following aliases.
func (t *Tree) Owner(p string) (string, bool) {
	owner, ok := t.owners[paths.Normalize(p)]
	return owner, ok
}

// HasNode reports whether p is a node.
func (t *Tree) HasNode(p string) bool {
	_, err := t.g.Vertex(paths.Normalize(p))
	return err == nil
}

// HasEdge reports whether a containment or alias edge a -> b exists.
func (t *Tree) HasEdge(a, b string) bool {
	_, err := t.g.Edge(paths.Normalize(a), paths.Normalize(b))
	return err == nil
}

// Links returns every alias edge, recorded or synthesized, in insertion
// order.
func (t *Tree) Links() []Link {
	return append([]Link(nil), t.links...)
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	n, err := t.g.Order()
	if err != nil {
		return 0
	}
	return n
}

// WriteDOT renders the graph in Graphviz DOT. Symlink edges are dashed.
func (t *Tree) WriteDOT(w io.Writer) error {
	return draw.DOT(t.g, w)
}
