// Package asset describes per-zone asset sets and loads them through a backend-specific loader.
package asset

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/lixenwraith/oasis/core"
)

// ErrAssetNotFound is returned by loaders for paths they cannot resolve
var ErrAssetNotFound = errors.New("asset not found")

// Set is the environment asset group swapped on zone entry
type Set struct {
	Ground string `yaml:"ground"`
	Sky    string `yaml:"sky"`
}

// Paths lists the non-empty paths of the set
func (s Set) Paths() []string {
	out := make([]string, 0, 2)
	for _, p := range []string{s.Ground, s.Sky} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Catalog maps each zone to its environment set
type Catalog map[core.Zone]Set

// For returns the set of zone z
func (c Catalog) For(z core.Zone) (Set, error) {
	s, ok := c[z]
	if !ok {
		return Set{}, fmt.Errorf("zone %s: %w", z, ErrAssetNotFound)
	}
	return s, nil
}

// Loader resolves an asset path into a backend resource
type Loader[T any] interface {
	Load(path string) (T, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc[T any] func(path string) (T, error)

func (f LoaderFunc[T]) Load(path string) (T, error) { return f(path) }

// CachingLoader memoizes successful loads, failures are retried on the next call
type CachingLoader[T any] struct {
	mu    sync.Mutex
	inner Loader[T]
	cache map[string]T
}

// NewCachingLoader wraps inner
func NewCachingLoader[T any](inner Loader[T]) *CachingLoader[T] {
	return &CachingLoader[T]{inner: inner, cache: make(map[string]T)}
}

func (c *CachingLoader[T]) Load(p string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.cache[p]; ok {
		return v, nil
	}
	v, err := c.inner.Load(p)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s: %w", p, err)
	}
	c.cache[p] = v
	return v, nil
}

// Len is the number of cached assets
func (c *CachingLoader[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Stem returns the lowercase file name of p without directory and extension
func Stem(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	return strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
}
