// Package images resolves gallery images for catalog items.
//
// Images are stored flat in a directory and keyed by a derived prefix of the
// item name rather than the full name, matching the catalog export layout.
// Image presence is always optional; the recommender core knows nothing
// about images.
package images

import (
	"os"
	"path/filepath"
)

const (
	defaultExt       = ".jpg"
	defaultPrefixLen = 3
)

// Resolver maps item names to image files in a directory.
type Resolver struct {
	dir       string
	ext       string
	prefixLen int
}

// Config holds optional resolver settings.
type Config struct {
	// Ext is the image file extension including the dot. Default: .jpg
	Ext string

	// PrefixLen is the number of leading runes of the item name used as the
	// file stem. Default: 3
	PrefixLen int
}

// NewResolver creates a resolver over the given directory.
func NewResolver(dir string, cfg Config) *Resolver {
	ext := cfg.Ext
	if ext == "" {
		ext = defaultExt
	}
	prefixLen := cfg.PrefixLen
	if prefixLen <= 0 {
		prefixLen = defaultPrefixLen
	}

	return &Resolver{
		dir:       dir,
		ext:       ext,
		prefixLen: prefixLen,
	}
}

// Key returns the derived file stem for an item name: its first PrefixLen
// runes. Names shorter than the prefix use the whole name.
func (r *Resolver) Key(name string) string {
	runes := []rune(name)
	if len(runes) > r.prefixLen {
		runes = runes[:r.prefixLen]
	}
	return string(runes)
}

// Path returns the image path an item's gallery image would live at,
// whether or not the file exists.
func (r *Resolver) Path(name string) string {
	return filepath.Join(r.dir, r.Key(name)+r.ext)
}

// Resolve returns the image path for an item and whether the file exists.
func (r *Resolver) Resolve(name string) (string, bool) {
	path := r.Path(name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return path, false
	}
	return path, true
}
