package generic

import (
	"sync"
	"time"
)

// Outdating is anything that becomes outdated at some point.
type Outdating interface {
	Time() time.Time
}

// Element is a cacheable value. Elements with equal Hash replace each other.
type Element interface {
	Outdating
	Hash() interface{}
}

// Cache holds the latest Element per Hash.
type Cache struct {
	cache map[interface{}]Element
	cm    *sync.RWMutex

	outdated func(time.Time) bool
}

// NewCache returns a Cache for Elements. The Cache automatically deletes
// Elements, that are outdated. I.e. if outdated returns true for an Element's
// Time, it is deleted.
func NewCache(outdated func(time.Time) bool) *Cache {
	return &Cache{
		cache:    make(map[interface{}]Element),
		cm:       &sync.RWMutex{},
		outdated: outdated,
	}
}

// Update stores e and deletes all outdated Elements.
func (c *Cache) Update(e Element) {
	c.cm.Lock()
	defer c.cm.Unlock()

	c.cache[e.Hash()] = e
	for h, v := range c.cache {
		if c.outdated(v.Time()) {
			delete(c.cache, h)
		}
	}
}

// Get returns the Element cached for hash. It returns nil if there is none
// or if it is outdated.
func (c *Cache) Get(hash interface{}) Element {
	c.cm.RLock()
	defer c.cm.RUnlock()

	e, ok := c.cache[hash]
	if !ok || c.outdated(e.Time()) {
		return nil
	}
	return e
}

// Delete removes the Element cached for hash.
func (c *Cache) Delete(hash interface{}) {
	c.cm.Lock()
	delete(c.cache, hash)
	c.cm.Unlock()
}

// Clear removes all Elements.
func (c *Cache) Clear() {
	c.cm.Lock()
	c.cache = make(map[interface{}]Element)
	c.cm.Unlock()
}

// Len returns the amount of cached Elements, including outdated ones that
// were not yet deleted.
func (c *Cache) Len() int {
	c.cm.RLock()
	defer c.cm.RUnlock()
	return len(c.cache)
}
