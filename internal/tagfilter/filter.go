// Package tagfilter models the tag filter shown above a digest. A video is
// visible when nothing is checked or when it carries at least one checked key.
// The browser script in web/static/tagfilter.js implements the same rules on
// top of localStorage; the server uses this package for the no-script form.
package tagfilter

import (
	"strings"
)

// StorageKey is the localStorage key used by the browser script
const StorageKey = "otoran:tags-filter"

// Phase tells an application of the filter apart from the one made on page load
type Phase int

const (
	// Initial is the application made while restoring a page. It never writes storage.
	Initial Phase = iota
	// Changed is any application caused by the user.
	Changed
)

// Storage persists the selection as a single space separated string
type Storage interface {
	Load() string
	Save(value string)
}

// Pad joins normalized keys into the space padded string stored on each video
func Pad(keys []string) string {
	return " " + strings.Join(keys, " ") + " "
}

// Visible reports whether a video with the padded key string is shown
func Visible(padded string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, key := range selected {
		if strings.Contains(padded, " "+key+" ") {
			return true
		}
	}
	return false
}

// ParseSelection splits a stored selection into keys
func ParseSelection(stored string) []string {
	var keys []string
	for _, key := range strings.Split(stored, " ") {
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// Filter is the filter state of one rendered page
type Filter struct {
	storage   Storage
	available []string
	selected  []string
}

// New creates a filter over the keys offered on the page
func New(storage Storage, available []string) *Filter {
	return &Filter{
		storage:   storage,
		available: available,
	}
}

// Restore checks the offered keys found in storage and applies them as the
// initial state
func (f *Filter) Restore() []string {
	f.Apply(Initial, ParseSelection(f.storage.Load()))
	return f.selected
}

// Apply replaces the selection with the checked keys that are offered on the
// page, in page order. Storage is rewritten unless phase is Initial.
func (f *Filter) Apply(phase Phase, checked []string) {
	want := make(map[string]bool, len(checked))
	for _, key := range checked {
		want[key] = true
	}

	selected := make([]string, 0, len(checked))
	for _, key := range f.available {
		if want[key] {
			selected = append(selected, key)
		}
	}
	f.selected = selected

	if phase != Initial {
		f.storage.Save(strings.Join(selected, " "))
	}
}

// Selected returns the checked keys
func (f *Filter) Selected() []string {
	return f.selected
}

// Checked reports whether key is selected
func (f *Filter) Checked(key string) bool {
	for _, k := range f.selected {
		if k == key {
			return true
		}
	}
	return false
}

// Active reports whether any key is selected
func (f *Filter) Active() bool {
	return len(f.selected) > 0
}

// Visible reports whether a video with the padded key string is shown
func (f *Filter) Visible(padded string) bool {
	return Visible(padded, f.selected)
}
