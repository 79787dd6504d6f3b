package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads fresh bytes for a cache key (an endpoint path).
type FetchFunc func(ctx context.Context) ([]byte, error)

type entry struct {
	data  []byte
	stale bool
}

// Cache is a request/response cache keyed by endpoint path. Mutations and
// inbound relay envelopes invalidate keys; re-fetches for the same key are
// coalesced so at most one fetch per key is in flight.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Get returns the cached bytes for path, fetching via fetch when the key is
// missing or stale. Concurrent calls for one stale key share a single fetch.
func (c *Cache) Get(ctx context.Context, path string, fetch FetchFunc) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[path]
	if ok && !e.stale {
		data := e.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(path, func() (interface{}, error) {
		// Another caller may have completed the fetch while this one waited
		// on the flight group.
		c.mu.RLock()
		if e, ok := c.entries[path]; ok && !e.stale {
			data := e.data
			c.mu.RUnlock()
			return data, nil
		}
		c.mu.RUnlock()

		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[path] = &entry{data: data}
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate marks the key stale. The cached bytes stay available to the
// singleflight check but the next Get triggers a re-fetch.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[path]; ok {
		e.stale = true
	}
}

// Drop removes the key entirely.
func (c *Cache) Drop(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len reports the number of cached keys, stale or fresh.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ApplyEnvelope maps an inbound relay envelope to cache invalidations:
//
//	new_message / send_message → the conversation's message list and the
//	conversation index
//	user_status                → the user's profile
//
// Unrecognized envelope types are ignored; they are not an error.
func (c *Cache) ApplyEnvelope(envType string, raw []byte) {
	switch envType {
	case "new_message":
		var body struct {
			Message struct {
				ConversationID uint `json:"conversation_id"`
			} `json:"message"`
		}
		if json.Unmarshal(raw, &body) != nil || body.Message.ConversationID == 0 {
			return
		}
		c.Invalidate(fmt.Sprintf("/api/conversations/%d/messages", body.Message.ConversationID))
		c.Invalidate("/api/conversations")
	case "send_message":
		var body struct {
			ConversationID uint `json:"conversation_id"`
		}
		if json.Unmarshal(raw, &body) != nil || body.ConversationID == 0 {
			return
		}
		c.Invalidate(fmt.Sprintf("/api/conversations/%d/messages", body.ConversationID))
		c.Invalidate("/api/conversations")
	case "user_status":
		var body struct {
			UserID uint `json:"user_id"`
		}
		if json.Unmarshal(raw, &body) != nil || body.UserID == 0 {
			return
		}
		c.Invalidate(fmt.Sprintf("/api/users/%d", body.UserID))
	}
}
