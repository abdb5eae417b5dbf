package corpus

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// entityCache memoises recogniser output per text, in memory and optionally
// as one JSON file per key under dir.
type entityCache struct {
	mu      sync.RWMutex
	m       map[string][]Entity
	dir     string
	modelID string
}

func newEntityCache(dir, modelID string) *entityCache {
	return &entityCache{m: make(map[string][]Entity), dir: dir, modelID: modelID}
}

func (c *entityCache) key(text string) string {
	h := sha1.Sum([]byte(c.modelID + "|" + text))
	return hex.EncodeToString(h[:])
}

func (c *entityCache) get(key string) ([]Entity, bool) {
	c.mu.RLock()
	v, ok := c.m[key]
	c.mu.RUnlock()
	if ok {
		return v, true
	}
	v, ok, err := c.load(key)
	if err != nil || !ok {
		return nil, false
	}
	c.put(key, v)
	return v, true
}

func (c *entityCache) put(key string, v []Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = v
}

func (c *entityCache) load(key string) ([]Entity, bool, error) {
	if c.dir == "" {
		return nil, false, nil
	}
	path := filepath.Join(c.dir, key+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var ents []Entity
	if err := json.Unmarshal(data, &ents); err != nil {
		return nil, false, fmt.Errorf("cache file broken: %s: %w", path, err)
	}
	if ents == nil {
		ents = []Entity{}
	}
	return ents, true, nil
}

func (c *entityCache) save(key string, v []Entity) error {
	if c.dir == "" {
		return nil
	}
	if v == nil {
		v = []Entity{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key+".json"), data, 0o644)
}
