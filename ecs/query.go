package ecs

import (
	"github.com/milk9111/arena/ecs/component"
)

// ForEach visits every entity carrying kind. Entities destroyed or stripped of
// the component during the walk are skipped.
func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A)) {
	s := storeFor(w, a, false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range s.snapshot() {
		va, ok := Get(w, e, a)
		if !ok {
			continue
		}
		fn(e, va)
	}
}

func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B)) {
	s := storeFor(w, a, false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range s.snapshot() {
		va, ok := Get(w, e, a)
		if !ok {
			continue
		}
		vb, ok := Get(w, e, b)
		if !ok {
			continue
		}
		fn(e, va, vb)
	}
}

func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	s := storeFor(w, a, false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range s.snapshot() {
		va, ok := Get(w, e, a)
		if !ok {
			continue
		}
		vb, ok := Get(w, e, b)
		if !ok {
			continue
		}
		vc, ok := Get(w, e, c)
		if !ok {
			continue
		}
		fn(e, va, vb, vc)
	}
}

func ForEach4[A, B, C, D any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], d component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	s := storeFor(w, a, false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range s.snapshot() {
		va, ok := Get(w, e, a)
		if !ok {
			continue
		}
		vb, ok := Get(w, e, b)
		if !ok {
			continue
		}
		vc, ok := Get(w, e, c)
		if !ok {
			continue
		}
		vd, ok := Get(w, e, d)
		if !ok {
			continue
		}
		fn(e, va, vb, vc, vd)
	}
}

// Query returns a copy of the entities carrying kind, for loops that need an
// early exit.
func Query[A any](w *World, a component.ComponentKind[A]) []Entity {
	s := storeFor(w, a, false)
	if s == nil {
		return nil
	}
	return s.snapshot()
}
