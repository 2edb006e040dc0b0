// Package filter holds the file-extension filters attached to file dialogs.
package filter

import (
	"path/filepath"
	"strings"
)

// Filter is a named group of extensions. Every extension starts with a dot.
type Filter struct {
	Description string
	Extensions  []string
}

// Normalize prefixes ext with a dot when it lacks one.
// Empty input yields "" and is meant to be dropped.
func Normalize(ext string) string {
	if ext == "" {
		return ""
	}
	if strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// New builds a filter from raw extensions. It reports false when no
// extension survives normalization; callers treat that as a no-op.
func New(description string, extensions ...string) (Filter, bool) {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if n := Normalize(ext); n != "" {
			exts = append(exts, n)
		}
	}
	if len(exts) == 0 {
		return Filter{}, false
	}
	return Filter{Description: description, Extensions: exts}, true
}

// Matches reports whether the file name of path ends with one of the extensions.
func (f Filter) Matches(path string) bool {
	name := filepath.Base(path)
	for _, ext := range f.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Format renders the filter for a backend. layout may reference {desc} and
// {types}; typeLayout is applied to each extension via {ext} and the
// resulting tokens are joined with a single space, in order.
//
//	f.Format("{desc} ({types})", "*{ext}") // "Images (*.png *.jpg)"
func (f Filter) Format(layout, typeLayout string) string {
	types := make([]string, len(f.Extensions))
	for i, ext := range f.Extensions {
		types[i] = strings.ReplaceAll(typeLayout, "{ext}", ext)
	}
	r := strings.NewReplacer("{desc}", f.Description, "{types}", strings.Join(types, " "))
	return r.Replace(layout)
}

// BareExtensions returns the extensions without their leading dot. A lone
// "." has nothing left and is skipped.
func (f Filter) BareExtensions() []string {
	out := make([]string, 0, len(f.Extensions))
	for _, ext := range f.Extensions {
		if bare := strings.TrimPrefix(ext, "."); bare != "" {
			out = append(out, bare)
		}
	}
	return out
}

// Set is an ordered list of filters. The first filter is the default
// selection on backends that show a dropdown.
type Set []Filter

// Accepts reports whether path passes the set. An empty set accepts everything.
func (s Set) Accepts(path string) bool {
	if len(s) == 0 {
		return true
	}
	for _, f := range s {
		if f.Matches(path) {
			return true
		}
	}
	return false
}

// With returns a copy of s with f appended. The receiver is never modified,
// so builder values sharing a backing array stay independent.
func (s Set) With(f Filter) Set {
	out := make(Set, len(s), len(s)+1)
	copy(out, s)
	return append(out, f)
}

// Extensions lists every extension of every filter, in order.
func (s Set) Extensions() []string {
	var out []string
	for _, f := range s {
		out = append(out, f.Extensions...)
	}
	return out
}
