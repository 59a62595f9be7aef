// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package registry exposes the static catalogue of content types.

Definitions are fixed at build time. A [Registry] is a read-only lookup
structure built once in main and injected wherever content types are needed.
*/
package registry

import (
	"fmt"
	"slices"

	"github.com/taibuivan/folio/internal/content/schema"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/slice"
)

// Registry is an immutable set of content type definitions.
//
// Returned definitions share nested field slices with the registry and
// must be treated as read-only.
type Registry struct {
	types  []schema.ContentTypeDefinition
	bySlug map[string]int
}

// New builds a registry from the given definitions in order.
// A later definition with an already registered slug is rejected.
func New(types ...schema.ContentTypeDefinition) (*Registry, error) {
	registry := &Registry{
		types:  make([]schema.ContentTypeDefinition, 0, len(types)),
		bySlug: make(map[string]int, len(types)),
	}

	for _, def := range types {
		if _, exists := registry.bySlug[def.Slug]; exists {
			return nil, fmt.Errorf("registry: duplicate content type %q", def.Slug)
		}
		registry.bySlug[def.Slug] = len(registry.types)
		registry.types = append(registry.types, def)
	}

	return registry, nil
}

// Default returns a registry holding the built-in content types.
func Default() *Registry {
	registry, err := New(BuiltIn()...)
	if err != nil {
		// The built-in list is a compile-time constant.
		panic(err)
	}
	return registry
}

// # Lookup

// GetBySlug returns the definition registered under slug.
func (r *Registry) GetBySlug(slug string) (schema.ContentTypeDefinition, bool) {
	index, ok := r.bySlug[slug]
	if !ok {
		return schema.ContentTypeDefinition{}, false
	}
	return r.types[index], true
}

// Lookup is GetBySlug for service code: a missing type is a NOT_FOUND [apperr.AppError].
func (r *Registry) Lookup(slug string) (schema.ContentTypeDefinition, error) {
	def, ok := r.GetBySlug(slug)
	if !ok {
		return schema.ContentTypeDefinition{}, apperr.NotFound("Content type")
	}
	return def, nil
}

// List returns every definition in registration order.
func (r *Registry) List() []schema.ContentTypeDefinition {
	return slices.Clone(r.types)
}

// ListSingle returns the types that hold exactly one entry by convention.
func (r *Registry) ListSingle() []schema.ContentTypeDefinition {
	return slice.Filter(r.types, func(def schema.ContentTypeDefinition) bool { return def.IsSingle })
}

// ListCollections returns the types that hold any number of entries.
func (r *Registry) ListCollections() []schema.ContentTypeDefinition {
	return slice.Filter(r.types, func(def schema.ContentTypeDefinition) bool { return !def.IsSingle })
}

// # Integrity

// Validate runs [schema.Validate] on every definition. The result maps a
// type slug to its problems and is empty when the whole registry is sound.
func (r *Registry) Validate() map[string][]schema.ValidationError {
	problems := make(map[string][]schema.ValidationError)
	for _, def := range r.types {
		if found := schema.Validate(def); len(found) > 0 {
			problems[def.Slug] = found
		}
	}
	return problems
}
