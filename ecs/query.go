package ecs

import "github.com/milk9111/hakenslash/ecs/component"

// The ForEach helpers iterate over a snapshot of the first store's entities,
// so callbacks may create or destroy entities. Entities destroyed or stripped
// of a component earlier in the same pass are skipped.

func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	if s == nil {
		return
	}
	for _, e := range s.Entities() {
		v, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	s := w.store(ka.ID(), false)
	if s == nil || w.store(kb.ID(), false) == nil {
		return
	}
	for _, e := range s.Entities() {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	s := w.store(ka.ID(), false)
	if s == nil || w.store(kb.ID(), false) == nil || w.store(kc.ID(), false) == nil {
		return
	}
	for _, e := range s.Entities() {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	s := w.store(ka.ID(), false)
	if s == nil || w.store(kb.ID(), false) == nil || w.store(kc.ID(), false) == nil || w.store(kd.ID(), false) == nil {
		return
	}
	for _, e := range s.Entities() {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		d, ok := Get(w, e, kd)
		if !ok {
			continue
		}
		fn(e, a, b, c, d)
	}
}
