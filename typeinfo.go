package tagval

import (
	"reflect"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Scalar is the closed set of types stored inline. Named types whose
// underlying type is a bool, integer or float (enumerations) are scalars
// too and keep their own identity.
type Scalar interface {
	constraints.Integer | constraints.Float | ~bool | Decimal | OffsetTime | time.Time
}

type class uint8

const (
	classObject    class = iota // any non-scalar concrete type
	classScalar                 // stored inline, matched by exact type
	classNullable               // Nullable[T] over a scalar T
	classInterface              // matched by assignability
)

// typeInfo is how a Go type takes part in construction and retrieval.
type typeInfo struct {
	class class

	// kind is the scalar kind for classScalar, and the kind of V for
	// classNullable.
	kind Kind

	// elem and validOffset describe the V and Valid fields of a Nullable.
	elem        reflect.Type
	validOffset uintptr
}

type typeCache struct {
	mu    sync.RWMutex
	infos map[reflect.Type]*typeInfo
}

var (
	types        = &typeCache{infos: make(map[reflect.Type]*typeInfo)}
	pkgPath      = typeFor[Value]().PkgPath()
	nullableType = typeFor[nullable]()
)

// infoOf returns the cached classification of t, computing it on first use.
func infoOf(t reflect.Type) *typeInfo {
	types.mu.RLock()
	if info, ok := types.infos[t]; ok {
		types.mu.RUnlock()
		return info
	}
	types.mu.RUnlock()

	types.mu.Lock()
	defer types.mu.Unlock()

	// Double-check
	if info, ok := types.infos[t]; ok {
		return info
	}
	info := classify(t)
	types.infos[t] = info
	return info
}

func classify(t reflect.Type) *typeInfo {
	switch t {
	case charType:
		return &typeInfo{class: classScalar, kind: KindChar}
	case decimalType:
		return &typeInfo{class: classScalar, kind: KindDecimal}
	case offsetTimeType:
		return &typeInfo{class: classScalar, kind: KindOffsetTime}
	case timeType:
		return &typeInfo{class: classScalar, kind: KindTime}
	}
	if k := kindOf(t.Kind()); k != KindInvalid {
		return &typeInfo{class: classScalar, kind: k}
	}
	switch t.Kind() {
	case reflect.Interface:
		return &typeInfo{class: classInterface}
	case reflect.Struct:
		if t.PkgPath() == pkgPath && t.Implements(nullableType) {
			v, valid := t.Field(0), t.Field(1)
			return &typeInfo{
				class:       classNullable,
				kind:        classify(v.Type).kind,
				elem:        v.Type,
				validOffset: valid.Offset,
			}
		}
	}
	return &typeInfo{class: classObject}
}

// embedding is a resolved path from a pointer to a struct down to one of its
// embedded structs.
type embedding struct {
	steps []embedStep
	ok    bool
}

type embedStep struct {
	offset   uintptr
	indirect bool // the embedded field is a pointer and must be followed
}

type typePair struct {
	from, to reflect.Type
}

type embedCache struct {
	mu    sync.RWMutex
	paths map[typePair]embedding
}

var embeds = &embedCache{paths: make(map[typePair]embedding)}

// embedPath resolves how a *from (pointer to struct) reaches a *to through
// embedded fields, the way a derived object exposes its base.
func embedPath(from, to reflect.Type) embedding {
	key := typePair{from, to}
	embeds.mu.RLock()
	if e, ok := embeds.paths[key]; ok {
		embeds.mu.RUnlock()
		return e
	}
	embeds.mu.RUnlock()

	var e embedding
	if from.Kind() == reflect.Pointer && from.Elem().Kind() == reflect.Struct &&
		to.Kind() == reflect.Pointer && to.Elem().Kind() == reflect.Struct {
		e.steps, e.ok = findEmbedded(from.Elem(), to.Elem())
	}

	embeds.mu.Lock()
	defer embeds.mu.Unlock()
	if prev, ok := embeds.paths[key]; ok {
		return prev
	}
	embeds.paths[key] = e
	return e
}

// findEmbedded searches the embedded fields of root breadth first, like Go
// resolves promoted fields. A target found twice at the shallowest depth is
// ambiguous and reported as not found.
//
// As in reflect's FieldByNameFunc, a struct type is expanded at most once,
// at the shallowest depth it appears, and a type reached through more than
// one path at that depth taints everything found beneath it as ambiguous.
func findEmbedded(root, target reflect.Type) ([]embedStep, bool) {
	type node struct {
		typ   reflect.Type
		steps []embedStep
		count int // paths reaching typ at this depth; 2 means "more than one"
	}
	visited := map[reflect.Type]bool{}
	level := []node{{typ: root, count: 1}}
	for len(level) > 0 {
		var (
			next    []node
			index   = map[reflect.Type]int{}
			found   []embedStep
			matches int
		)
		for _, n := range level {
			if visited[n.typ] {
				continue
			}
			visited[n.typ] = true
			for i := 0; i < n.typ.NumField(); i++ {
				f := n.typ.Field(i)
				if !f.Anonymous {
					continue
				}
				ft, indirect := f.Type, false
				if ft.Kind() == reflect.Pointer {
					ft, indirect = ft.Elem(), true
				}
				if ft.Kind() != reflect.Struct {
					continue
				}
				if ft == target {
					matches += n.count
					found = append(append([]embedStep(nil), n.steps...), embedStep{offset: f.Offset, indirect: indirect})
					continue
				}
				if visited[ft] {
					continue
				}
				if j, ok := index[ft]; ok {
					next[j].count = 2
					continue
				}
				count := 1
				if n.count > 1 {
					count = 2
				}
				index[ft] = len(next)
				next = append(next, node{
					typ:   ft,
					steps: append(append([]embedStep(nil), n.steps...), embedStep{offset: f.Offset, indirect: indirect}),
					count: count,
				})
			}
		}
		if matches == 1 {
			return found, true
		}
		if matches > 1 {
			return nil, false
		}
		level = next
	}
	return nil, false
}

// follow walks e from base, the address of the outermost struct, and returns
// the address of the embedded struct. It fails on a nil embedded pointer.
func (e embedding) follow(base unsafe.Pointer) (unsafe.Pointer, bool) {
	p := base
	for _, s := range e.steps {
		p = unsafe.Add(p, s.offset)
		if s.indirect {
			p = *(*unsafe.Pointer)(p)
			if p == nil {
				return nil, false
			}
		}
	}
	return p, true
}
