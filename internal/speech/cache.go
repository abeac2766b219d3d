package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// AudioCache keeps synthesized clips in memory. Keys are
// sha256(voice + ":" + text), so switching accent never replays a clip in
// the old voice. When full, the oldest entry is evicted.
type AudioCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	order   []string
	max     int
	hits    int64
	misses  int64
	log     *logger.Logger
}

// NewAudioCache creates a cache holding at most max clips. max <= 0 means
// unbounded.
func NewAudioCache(max int, log *logger.Logger) *AudioCache {
	return &AudioCache{
		entries: make(map[string][]byte),
		max:     max,
		log:     log,
	}
}

// Get returns the cached clip for text in voice.
func (c *AudioCache) Get(voice, text string) ([]byte, bool) {
	key := cacheKey(voice, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.log.Debug("cache hit: %s (%d bytes)", truncate(text, 40), len(data))
	return data, true
}

// Put stores a clip.
func (c *AudioCache) Put(voice, text string, audio []byte) {
	key := cacheKey(voice, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = audio

	for c.max > 0 && len(c.order) > c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Has reports whether a clip is cached without counting a hit or miss.
func (c *AudioCache) Has(voice, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[cacheKey(voice, text)]
	return ok
}

// Len returns the number of cached clips.
func (c *AudioCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns hit and miss counts.
func (c *AudioCache) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func cacheKey(voice, text string) string {
	h := sha256.Sum256([]byte(voice + ":" + text))
	return hex.EncodeToString(h[:])
}
