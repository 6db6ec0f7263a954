package layout

import (
	"hash/maphash"
	"sync"

	"github.com/npillmayer/textlayout/fontres"
)

// maxCachedText is the maximum number of code points of a text to be
// considered for the layout cache.
const maxCachedText = 256

// DefaultCacheBudget is the default number of code points the layout cache
// holds before it is cleared.
const DefaultCacheBudget = 1 << 16

// cacheEntry holds the runs and lines of a simple, unwrapped layout, plus
// the glyph data its runs point into. Once published to the cache, an entry
// is immutable.
type cacheEntry struct {
	fontKey      string
	text         string
	runs         []*Run
	lines        []*Line
	layoutWidth  float32
	layoutHeight float32
	analysis     layoutFlags
	glyphs       []fontres.GlyphID
	advances     []float32
	valid        bool
}

func newCacheEntry(n int) *cacheEntry {
	return &cacheEntry{
		glyphs:   make([]fontres.GlyphID, n),
		advances: make([]float32, n),
	}
}

// layoutCache is shared by all layouts of a process. Lookups are lock-free;
// the mutex serializes accounting and eviction.
type layoutCache struct {
	entries sync.Map // uint64 → *cacheEntry
	mu      sync.Mutex
	size    int // code points held
	budget  int
}

var sharedCache = &layoutCache{budget: DefaultCacheBudget}

var cacheSeed = maphash.MakeSeed()

func cacheKeyFor(fontKey, text string) uint64 {
	var h maphash.Hash
	h.SetSeed(cacheSeed)
	h.WriteString(fontKey)
	h.WriteByte(0)
	h.WriteString(text)
	return h.Sum64()
}

// lookup returns the entry for key if it holds the layout of text in the
// font with key fontKey.
func (c *layoutCache) lookup(key uint64, fontKey string, text []rune) *cacheEntry {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil
	}
	e := v.(*cacheEntry)
	if e.fontKey != fontKey || e.text != string(text) {
		tracer().Debugf("layout cache: hash collision for %q", e.text)
		return nil
	}
	return e
}

// publish stores a valid entry. If the cache would exceed its budget, it is
// cleared first.
func (c *layoutCache) publish(key uint64, e *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.budget <= 0 {
		return
	}
	n := len(e.glyphs)
	if c.size+n > c.budget {
		tracer().Debugf("layout cache: budget of %d exceeded, clearing", c.budget)
		c.entries.Clear()
		c.size = 0
	}
	if _, loaded := c.entries.LoadOrStore(key, e); !loaded {
		c.size += n
	}
}

func (c *layoutCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Clear()
	c.size = 0
}

// SetCacheBudget sets the number of code points the process-wide layout
// cache may hold. A budget of 0 disables caching.
func SetCacheBudget(chars int) {
	sharedCache.mu.Lock()
	defer sharedCache.mu.Unlock()
	sharedCache.budget = max(chars, 0)
	if sharedCache.size > sharedCache.budget {
		sharedCache.entries.Clear()
		sharedCache.size = 0
	}
}

// ClearCache removes all entries from the layout cache.
func ClearCache() {
	sharedCache.clear()
}

// CacheSize returns the number of entries and code points held by the layout
// cache.
func CacheSize() (entries, chars int) {
	sharedCache.mu.Lock()
	chars = sharedCache.size
	sharedCache.mu.Unlock()
	sharedCache.entries.Range(func(_, _ any) bool {
		entries++
		return true
	})
	return
}

// initCache looks up the layout cache and takes over runs, and lines if
// possible, from a matching entry.
func (l *Layout) initCache() {
	if !l.cacheable() {
		return
	}
	if l.cache == nil {
		if e := sharedCache.lookup(l.cacheKey, l.font.Key(), l.chars); e != nil {
			tracer().Debugf("layout cache hit for %q", e.text)
			l.cache = e
			l.runs, l.runsShared = e.runs, true
			l.flags |= e.analysis
		}
	}
	if l.cache == nil || !l.cache.valid {
		return
	}
	if l.copyCache() {
		if l.runsShared {
			l.runs = append([]*Run(nil), l.runs...)
			l.runsShared = false
		}
	} else if l.cache.lines != nil {
		l.runs, l.runsShared = l.cache.runs, true
		l.flags |= l.cache.analysis
		l.lines = l.cache.lines
		l.layoutWidth = l.cache.layoutWidth
		l.layoutHeight = l.cache.layoutHeight
		l.logicalBounds = Rect{MaxX: l.layoutWidth, MaxY: l.layoutHeight}
	}
}

// cacheable is true if runs of the shared cache apply to l. Cached runs
// are resolved by the default bidi analyzer for a left-to-right paragraph
// with logical metrics.
func (l *Layout) cacheable() bool {
	if _, ok := l.caps.Bidi.(UnicodeBidi); !ok || !l.keyed {
		return false
	}
	return l.boundsType == BoundsLogical &&
		(l.direction == LeftToRight || l.direction == AutoLeftToRight)
}

// publishCache stores the finished layout in the cache if it is a candidate
// for sharing.
func (l *Layout) publishCache() {
	if l.cache == nil {
		return
	}
	if l.cacheable() && !l.cache.valid && !l.copyCache() {
		e := l.cache
		e.fontKey = l.font.Key()
		e.text = string(l.chars)
		e.runs = l.runs
		e.lines = l.lines
		e.layoutWidth = l.layoutWidth
		e.layoutHeight = l.layoutHeight
		e.analysis = l.flags & analysisMask
		e.valid = true
		l.runsShared = true
		sharedCache.publish(l.cacheKey, e)
		return
	}
	if !l.cache.valid {
		l.cache.valid = true
	}
}
