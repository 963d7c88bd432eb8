// Package layout computes the byte size and field offsets of exported structs.
//
// The model is deliberately simple linear packing: fields are laid out back to
// back in source order with no per-field alignment padding, and the struct
// size is rounded up to a multiple of Alignment. Source field order is
// authoritative; schema authors order fields to match what the GPU expects.
package layout

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/april-engine/schemagen/internal/codegen/common"
	"github.com/april-engine/schemagen/internal/codegen/meta"
)

// Alignment is the unit every struct size is rounded up to.
const Alignment = 16

// fixedWidthSizes covers the sized integer types. They are valid as field
// types and enum backings but have no entry in the shared type table.
var fixedWidthSizes = map[string]int{
	"int8_t":   1,
	"uint8_t":  1,
	"int16_t":  2,
	"uint16_t": 2,
	"int32_t":  4,
	"uint32_t": 4,
	"int64_t":  8,
	"uint64_t": 8,
}

// Context holds the type sizes and integer constants known to one resolution
// run. It grows as structs resolve; separate runs use separate contexts.
type Context struct {
	sizes     map[string]int
	constants map[string]int
}

// NewContext returns a context seeded with the builtin scalar, vector and
// matrix sizes and the fixed-width integers.
func NewContext() *Context {
	sizes := common.BuiltinTypeSizes()
	for name, size := range fixedWidthSizes {
		sizes[name] = size
	}
	return &Context{
		sizes:     sizes,
		constants: make(map[string]int),
	}
}

// TypeSize returns the known size of a type.
func (c *Context) TypeSize(name string) (int, bool) {
	size, ok := c.sizes[name]
	return size, ok
}

// DefineType records the size of a named type.
func (c *Context) DefineType(name string, size int) { c.sizes[name] = size }

// DefineConstant records an integer constant usable as an array length.
func (c *Context) DefineConstant(name string, value int) { c.constants[name] = value }

// RegisterFile makes a file's exported enums and integer constants known.
// Enums size as their backing type, `uint` when none is declared.
func (c *Context) RegisterFile(f *meta.SchemaFile) {
	for _, e := range f.Enums {
		backing := e.BackingType
		if backing == "" {
			backing = "uint"
		}
		if size, ok := c.sizes[backing]; ok {
			c.sizes[e.Name] = size
		}
	}
	for _, k := range f.Constants {
		if n, ok := common.ParseArrayLength(k.Value); ok {
			c.constants[k.Name] = n
		}
	}
}

func (c *Context) arrayLen(token string) (int, bool) {
	if n, ok := common.ParseArrayLength(token); ok {
		return n, true
	}
	n, ok := c.constants[token]
	return n, ok
}

type node struct {
	decl meta.StructDecl
	file string
}

// Resolve computes the layout of every exported struct across files.
//
// Structs are visited in dependency order: a struct becomes ready once every
// struct it embeds has a layout. Anything left over is reported in a single
// *Error together with the cycles that keep it stuck.
func (c *Context) Resolve(files []*meta.SchemaFile) (map[string]meta.Layout, error) {
	byName := make(map[string]node)
	for _, f := range files {
		c.RegisterFile(f)
	}
	for _, f := range files {
		for _, s := range f.Structs {
			if prev, ok := byName[s.Name]; ok {
				return nil, duplicateError(s.Name, prev.file, f.Path)
			}
			byName[s.Name] = node{decl: s, file: f.Path}
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	// deps[i] are the structs embedded by i; dependents[j] the structs embedding j.
	deps := make([][]int, len(names))
	dependents := make([][]int, len(names))
	indeg := make([]int, len(names))
	for i, name := range names {
		seen := make(map[int]bool)
		for _, field := range byName[name].decl.Fields {
			j, ok := index[field.Type]
			if !ok || seen[j] {
				continue
			}
			seen[j] = true
			deps[i] = append(deps[i], j)
			dependents[j] = append(dependents[j], i)
			indeg[i]++
		}
		sort.Ints(deps[i])
	}
	for j := range dependents {
		sort.Ints(dependents[j])
	}

	layouts := make(map[string]meta.Layout, len(names))
	failed := make(map[int][]string)

	ready := &intMinHeap{}
	for i := range names {
		if indeg[i] == 0 {
			heap.Push(ready, i)
		}
	}
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		name := names[i]
		l, reasons := c.computeLayout(byName[name].decl)
		if len(reasons) > 0 {
			failed[i] = reasons
			continue
		}
		layouts[name] = l
		c.sizes[name] = l.Size
		for _, k := range dependents[i] {
			indeg[k]--
			if indeg[k] == 0 {
				heap.Push(ready, k)
			}
		}
	}

	if len(layouts) == len(names) {
		return layouts, nil
	}

	err := &Error{Kind: ErrUnresolvable}
	stuck := make(map[int]bool)
	for i, name := range names {
		if _, ok := layouts[name]; ok {
			continue
		}
		stuck[i] = true
		reasons := failed[i]
		if reasons == nil {
			for _, j := range deps[i] {
				if _, ok := layouts[names[j]]; !ok {
					reasons = append(reasons, fmt.Sprintf("depends on unresolved struct %s", names[j]))
				}
			}
		}
		err.Unresolved = append(err.Unresolved, Unresolved{
			Struct:  name,
			File:    byName[name].file,
			Reasons: reasons,
		})
	}
	err.Cycles = findCycles(names, deps, stuck)
	return nil, err
}

// computeLayout sizes one struct whose embedded structs are already known.
// It returns the reasons the struct cannot be sized, if any.
func (c *Context) computeLayout(decl meta.StructDecl) (meta.Layout, []string) {
	var reasons []string
	l := meta.Layout{Fields: make([]meta.FieldOffset, 0, len(decl.Fields))}
	offset := 0
	for _, f := range decl.Fields {
		size, ok := c.sizes[f.Type]
		if !ok {
			reasons = append(reasons, fmt.Sprintf("field %s has undefined type %s", f.Name, f.Type))
			continue
		}
		if f.IsArray() {
			n, ok := c.arrayLen(f.ArrayLen)
			if !ok {
				reasons = append(reasons, fmt.Sprintf("field %s has unresolved array length %q", f.Name, f.ArrayLen))
				continue
			}
			size *= n
		}
		l.Fields = append(l.Fields, meta.FieldOffset{Name: f.Name, Type: f.Type, Offset: offset, Size: size})
		offset += size
	}
	if len(reasons) > 0 {
		return meta.Layout{}, reasons
	}
	l.Size = common.AlignUp(offset, Alignment)
	return l, nil
}

// findCycles walks the embedding graph of the stuck structs and returns one
// witness path per back edge, e.g. [A B A] for A embedding B embedding A.
func findCycles(names []string, deps [][]int, stuck map[int]bool) [][]string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(names))
	parent := make([]int, len(names))
	for i := range parent {
		parent[i] = -1
	}

	var cycles [][]string
	var dfs func(u int)
	dfs = func(u int) {
		color[u] = gray
		for _, v := range deps[u] {
			if !stuck[v] {
				continue
			}
			switch color[v] {
			case white:
				parent[v] = u
				dfs(v)
			case gray:
				path := []int{u}
				for cur := u; cur != v && parent[cur] != -1; {
					cur = parent[cur]
					path = append(path, cur)
				}
				out := make([]string, 0, len(path)+1)
				for k := len(path) - 1; k >= 0; k-- {
					out = append(out, names[path[k]])
				}
				cycles = append(cycles, append(out, names[v]))
			}
		}
		color[u] = black
	}

	for i := range names {
		if stuck[i] && color[i] == white {
			dfs(i)
		}
	}
	return cycles
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
