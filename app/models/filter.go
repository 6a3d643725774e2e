package models

import (
	"net/url"
	"strconv"
)

// PostFilter narrows a post listing. Nil fields match everything; set fields
// must match exactly and are combined with AND.
type PostFilter struct {
	ID       *int
	Title    *string
	Contents *string
}

// ParsePostFilter reads the supported filter keys from a query string.
// Unknown keys are ignored. Ids start at 1, so an id that does not parse
// is mapped to 0 and matches nothing.
func ParsePostFilter(q url.Values) PostFilter {
	var f PostFilter
	if q.Has("id") {
		id, err := strconv.Atoi(q.Get("id"))
		if err != nil || id < 0 {
			id = 0
		}
		f.ID = &id
	}
	if q.Has("title") {
		title := q.Get("title")
		f.Title = &title
	}
	if q.Has("contents") {
		contents := q.Get("contents")
		f.Contents = &contents
	}
	return f
}

// IsEmpty reports whether the filter matches every post.
func (f PostFilter) IsEmpty() bool {
	return f.ID == nil && f.Title == nil && f.Contents == nil
}

// Matches reports whether p satisfies every set field of the filter.
func (f PostFilter) Matches(p *Post) bool {
	if p == nil {
		return false
	}
	if f.ID != nil && p.ID != *f.ID {
		return false
	}
	if f.Title != nil && p.Title != *f.Title {
		return false
	}
	if f.Contents != nil && p.Contents != *f.Contents {
		return false
	}
	return true
}
