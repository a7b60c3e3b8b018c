package workspace

import "path/filepath"

// Match is one root containing a file, with the file's path relative to it.
type Match struct {
	Root         Root
	RelativePath string
}

// Resolution is the outcome of Resolve. Found is false when no root contains
// the file; Ambiguous is true when more than one does.
type Resolution struct {
	Match
	Found     bool
	Ambiguous bool
}

// Cache memoises resolutions by absolute file path. It is never invalidated:
// build a new one whenever the root set changes. The zero value is not
// usable; call NewCache.
type Cache struct {
	single map[string]Resolution
	all    map[string][]Match
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		single: make(map[string]Resolution),
		all:    make(map[string][]Match),
	}
}

// Len returns the number of memoised paths across both lookups.
func (c *Cache) Len() int {
	return len(c.single) + len(c.all)
}

// Resolve finds the root that owns filePath. When roots are nested, the root
// giving the shortest relative path (the narrowest one) wins and the result
// is marked ambiguous. A nil cache disables memoisation.
func Resolve(roots []Root, filePath string, cache *Cache) Resolution {
	if cache != nil {
		if res, ok := cache.single[filePath]; ok {
			return res
		}
	}

	var res Resolution
	matches := 0
	for _, root := range roots {
		rel, ok := IsInRoot(root.Path, filePath)
		if !ok {
			continue
		}
		matches++
		if !res.Found || len(rel) < len(res.RelativePath) {
			res.Match = Match{Root: root, RelativePath: rel}
			res.Found = true
		}
	}
	res.Ambiguous = matches > 1

	if cache != nil {
		cache.single[filePath] = res
	}
	return res
}

// ResolveAll returns every root containing filePath, in root order. Used when
// a location belongs to each enclosing project, such as an audit root nested
// in a client root.
func ResolveAll(roots []Root, filePath string, cache *Cache) []Match {
	if cache != nil {
		if m, ok := cache.all[filePath]; ok {
			return m
		}
	}

	var matches []Match
	for _, root := range roots {
		if rel, ok := IsInRoot(root.Path, filePath); ok {
			matches = append(matches, Match{Root: root, RelativePath: rel})
		}
	}

	if cache != nil {
		cache.all[filePath] = matches
	}
	return matches
}

// Resolver pairs a labelled root set with its cache, replacing the cache
// whenever the roots change.
type Resolver struct {
	roots []Root
	cache *Cache
}

// NewResolver labels rootPaths with UniqueLabels and returns a resolver over
// them. Paths are cleaned and duplicates dropped.
func NewResolver(rootPaths []string) *Resolver {
	r := &Resolver{}
	r.SetRoots(rootPaths)
	return r
}

// SetRoots replaces the root set and discards every memoised lookup.
func (r *Resolver) SetRoots(rootPaths []string) {
	seen := make(map[string]bool, len(rootPaths))
	var cleaned []string
	for _, p := range rootPaths {
		c := filepath.Clean(p)
		if seen[c] {
			continue
		}
		seen[c] = true
		cleaned = append(cleaned, c)
	}
	r.roots = UniqueLabels(cleaned)
	r.cache = NewCache()
}

// Roots returns a copy of the labelled roots.
func (r *Resolver) Roots() []Root {
	out := make([]Root, len(r.roots))
	copy(out, r.roots)
	return out
}

// Resolve is Resolve over the resolver's roots and cache.
func (r *Resolver) Resolve(filePath string) Resolution {
	return Resolve(r.roots, filepath.Clean(filePath), r.cache)
}

// ResolveAll is ResolveAll over the resolver's roots and cache.
func (r *Resolver) ResolveAll(filePath string) []Match {
	return ResolveAll(r.roots, filepath.Clean(filePath), r.cache)
}

// RootByLabel returns the root with the given label.
func (r *Resolver) RootByLabel(label string) (Root, bool) {
	for _, root := range r.roots {
		if root.Label == label {
			return root, true
		}
	}
	return Root{}, false
}

// CacheLen reports how many lookups are memoised.
func (r *Resolver) CacheLen() int {
	return r.cache.Len()
}
