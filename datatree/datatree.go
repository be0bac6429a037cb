/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package datatree

import (
	"path"
	"sort"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github/sabouaram/dargo/errors"
)

// CatalogueEntry is the slice of a filesystem walker's catalogue record
// that DataTree actually needs. The walker itself, and the richer
// inode/EA/FSA types it produces, live outside this package — DataTree
// only ever sees this flat projection of one entry.
type CatalogueEntry struct {
	// Path is slash-separated, relative to the archive root, e.g. "a/b/c".
	Path string
	// HasData reports whether this archive carries this file's content.
	HasData bool
	// DataDate is the file's last-modification date, valid when HasData.
	DataDate time.Time
	// HasEA reports whether this archive carries this file's extended
	// attributes/status.
	HasEA bool
	// EADate is the last-status-change date, valid when HasEA.
	EADate time.Time
}

// Catalogue is the minimal read surface DataTree needs from an archive's
// in-memory file index.
type Catalogue interface {
	Entries() []CatalogueEntry
}

// node is one path component in the tree: a directory holds children, a
// leaf (or a directory that is itself versioned, e.g. for permission
// changes) holds version maps keyed by archive number.
type node struct {
	name     string
	children map[string]*node
	data     map[int]time.Time
	ea       map[int]time.Time
}

func newNode(name string) *node {
	return &node{name: name, data: make(map[int]time.Time), ea: make(map[int]time.Time)}
}

func (n *node) empty() bool {
	return len(n.data) == 0 && len(n.ea) == 0 && len(n.children) == 0
}

// DataTree indexes, per archive-relative path, which archive holds each
// data and EA version, so the manager can answer "where do I restore
// this path from" without reopening every archive. live tracks which
// archive numbers have been added and not removed; AddArchive,
// RemoveArchive, SkipOut and ApplyPermutation keep it current, and
// ApplyPermutation checks its arguments against it in O(1) instead of
// walking the whole tree first.
type DataTree struct {
	root *node
	live *bitset.BitSet
}

// New returns an empty DataTree.
func New() *DataTree {
	return &DataTree{root: newNode(""), live: bitset.New(64)}
}

func splitPath(p string) []string {
	p = path.Clean("/" + p)
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}

func (dt *DataTree) locate(p string, create bool) *node {
	parts := splitPath(p)
	cur := dt.root
	for _, part := range parts {
		if cur.children == nil {
			if !create {
				return nil
			}
			cur.children = make(map[string]*node)
		}
		child, ok := cur.children[part]
		if !ok {
			if !create {
				return nil
			}
			child = newNode(part)
			cur.children[part] = child
		}
		cur = child
	}
	return cur
}

// AddArchive walks cat, recording archiveNum as the source of every
// entry's data and/or EA version at the date it carries.
func (dt *DataTree) AddArchive(cat Catalogue, archiveNum int) {
	for _, e := range cat.Entries() {
		n := dt.locate(e.Path, true)
		if e.HasData {
			n.data[archiveNum] = e.DataDate
			dt.live.Set(uint(archiveNum))
		}
		if e.HasEA {
			n.ea[archiveNum] = e.EADate
			dt.live.Set(uint(archiveNum))
		}
	}
}

// removeFrom drops every key in [min,max] from m.
func removeFrom(m map[int]time.Time, min, max int) {
	for k := range m {
		if k >= min && k <= max {
			delete(m, k)
		}
	}
}

// RemoveArchive drops every version entry whose archive number falls in
// [min,max], then prunes any leaf left with no versions and no children.
func (dt *DataTree) RemoveArchive(min, max int) error {
	if min > max {
		return errors.New(uint16(Range), "datatree: RemoveArchive min > max")
	}
	pruneChildren(dt.root, func(n *node) {
		removeFrom(n.data, min, max)
		removeFrom(n.ea, min, max)
	})
	for i := min; i <= max; i++ {
		dt.live.Clear(uint(i))
	}
	return nil
}

// rewriteKeys applies f to every key of m, rebuilding the map since Go
// forbids mutating a map's keys in place.
func rewriteKeys(m map[int]time.Time, f func(int) int) {
	rewritten := make(map[int]time.Time, len(m))
	for k, v := range m {
		rewritten[f(k)] = v
	}
	for k := range m {
		delete(m, k)
	}
	for k, v := range rewritten {
		m[k] = v
	}
}

// SkipOut decrements every archive number greater than n by one, closing
// the gap left by an archive that was removed from the chain (but whose
// entries were already dropped by a prior RemoveArchive).
func (dt *DataTree) SkipOut(n int) {
	shift := func(k int) int {
		if k > n {
			return k - 1
		}
		return k
	}
	pruneChildren(dt.root, func(nd *node) {
		rewriteKeys(nd.data, shift)
		rewriteKeys(nd.ea, shift)
	})
	shifted := bitset.New(dt.live.Len())
	for i, ok := dt.live.NextSet(0); ok; i, ok = dt.live.NextSet(i + 1) {
		shifted.Set(uint(shift(int(i))))
	}
	dt.live = shifted
}

// ApplyPermutation swaps archive numbers src and dst everywhere in the
// tree, mirroring two archives trading places in the chain. Swapping
// rather than overwriting keeps the rewrite a true bijection: whatever
// already lived at dst moves to src instead of being lost. It rejects
// the permutation up front when neither number is currently live,
// rather than silently doing nothing.
func (dt *DataTree) ApplyPermutation(src, dst int) error {
	if src == dst {
		return nil
	}
	if !dt.live.Test(uint(src)) && !dt.live.Test(uint(dst)) {
		return errors.New(uint16(Range), "datatree: ApplyPermutation: neither archive is live")
	}
	swap := func(k int) int {
		switch k {
		case src:
			return dst
		case dst:
			return src
		default:
			return k
		}
	}
	walk(dt.root, func(nd *node) {
		rewriteKeys(nd.data, swap)
		rewriteKeys(nd.ea, swap)
	})
	srcLive, dstLive := dt.live.Test(uint(src)), dt.live.Test(uint(dst))
	dt.live.SetTo(uint(src), dstLive)
	dt.live.SetTo(uint(dst), srcLive)
	return nil
}

func walk(n *node, f func(*node)) {
	f(n)
	for _, c := range n.children {
		walk(c, f)
	}
}

// pruneChildren applies f bottom-up, then removes any child left empty
// (no versions, no children of its own) after f ran.
func pruneChildren(n *node, f func(*node)) {
	for name, c := range n.children {
		pruneChildren(c, f)
		if c.empty() {
			delete(n.children, name)
		}
	}
	f(n)
}

// leaves collects every node that carries at least one version entry,
// paired with its path.
func leaves(n *node, prefix string, out *[]pathNode) {
	if len(n.data) > 0 || len(n.ea) > 0 {
		*out = append(*out, pathNode{path: prefix, n: n})
	}
	for name, c := range n.children {
		childPath := name
		if prefix != "" {
			childPath = prefix + "/" + name
		}
		leaves(c, childPath, out)
	}
}

type pathNode struct {
	path string
	n    *node
}

// OrderIssue describes the first monotonicity violation CheckOrder
// finds.
type OrderIssue struct {
	Path        string
	Kind        string // "data" or "ea"
	ArchiveA    int
	ArchiveB    int
	DateA, DateB time.Time
}

// CheckOrder walks every leaf and verifies that, for each file, version
// dates never decrease as the archive number increases. It returns the
// first inversion found, or ok==true if the whole tree is consistent.
func (dt *DataTree) CheckOrder() (issue OrderIssue, ok bool) {
	var all []pathNode
	leaves(dt.root, "", &all)
	sort.Slice(all, func(i, j int) bool { return all[i].path < all[j].path })

	checkMonotone := func(p string, kind string, m map[int]time.Time) (OrderIssue, bool) {
		keys := make([]int, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for i := 1; i < len(keys); i++ {
			if m[keys[i]].Before(m[keys[i-1]]) {
				return OrderIssue{
					Path: p, Kind: kind,
					ArchiveA: keys[i-1], ArchiveB: keys[i],
					DateA: m[keys[i-1]], DateB: m[keys[i]],
				}, false
			}
		}
		return OrderIssue{}, true
	}

	for _, pn := range all {
		if issue, ok := checkMonotone(pn.path, "data", pn.n.data); !ok {
			return issue, false
		}
		if issue, ok := checkMonotone(pn.path, "ea", pn.n.ea); !ok {
			return issue, false
		}
	}
	return OrderIssue{}, true
}

// latest returns the archive number with the greatest date not after
// before (when before is non-nil), ties broken by the larger archive
// number.
func latest(m map[int]time.Time, before *time.Time) (archiveNum int, date time.Time, ok bool) {
	for k, d := range m {
		if before != nil && d.After(*before) {
			continue
		}
		if !ok || d.After(date) || (d.Equal(date) && k > archiveNum) {
			archiveNum, date, ok = k, d, true
		}
	}
	return
}

// RestorePlan groups the paths to restore by the archive that must
// supply them, plus any warnings about a path whose data and EA live in
// different archives.
type RestorePlan struct {
	ByArchive map[int][]string
	Warnings  []string
}

// Restore resolves, for each requested path, the most recent data
// archive and most recent EA archive satisfying the before filter (nil
// means "no filter"), groups paths by source archive, and warns when a
// single file's data and EA come from different archives.
func (dt *DataTree) Restore(paths []string, before *time.Time) (RestorePlan, error) {
	plan := RestorePlan{ByArchive: make(map[int][]string)}
	for _, p := range paths {
		n := dt.locate(p, false)
		if n == nil {
			return plan, errors.New(uint16(NotFound), "datatree: Restore: "+p+" not found")
		}
		dataArc, _, dataOK := latest(n.data, before)
		eaArc, _, eaOK := latest(n.ea, before)

		switch {
		case dataOK && eaOK && dataArc == eaArc:
			plan.ByArchive[dataArc] = append(plan.ByArchive[dataArc], p)
		case dataOK && eaOK:
			plan.ByArchive[dataArc] = append(plan.ByArchive[dataArc], p)
			plan.ByArchive[eaArc] = append(plan.ByArchive[eaArc], p)
			plan.Warnings = append(plan.Warnings, warnSplit(p, dataArc, eaArc))
		case dataOK:
			plan.ByArchive[dataArc] = append(plan.ByArchive[dataArc], p)
		case eaOK:
			plan.ByArchive[eaArc] = append(plan.ByArchive[eaArc], p)
		}
	}
	return plan, nil
}

func warnSplit(p string, dataArc, eaArc int) string {
	return "warning: " + p + ": data restored from archive " + itoa(dataArc) +
		", extended attributes restored from archive " + itoa(eaArc)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
