// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads page/limit query parameters and describes a page
// of results in list responses.
package pagination

import (
	"net/http"

	"github.com/taibuivan/folio/pkg/convert"
)

// Pages are 1-indexed. Requests above MaxLimit are clamped, not rejected.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a requested page.
type Params struct {
	Page  int
	Limit int
}

// FromRequest reads ?page= and ?limit=. Malformed values take the defaults.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return Params{
		Page:  convert.ToIntD(query.Get("page"), DefaultPage),
		Limit: convert.ToIntD(query.Get("limit"), DefaultLimit),
	}.Clamp()
}

// Clamp replaces out of range values with the defaults and caps Limit.
func (p Params) Clamp() Params {
	p.Page = max(p.Page, 0)
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	switch {
	case p.Limit < 1:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the SQL OFFSET of the page.
func (p Params) Offset() int {
	return max(p.Page-1, 0) * p.Limit
}

// Meta is embedded in list envelopes next to the items.
type Meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewMeta computes the page count for total items. A zero limit yields zero pages.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Total: total, Page: page, Limit: limit}
	if limit > 0 {
		meta.Pages = (total + limit - 1) / limit
	}
	return meta
}
