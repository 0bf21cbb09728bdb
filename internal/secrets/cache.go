package secrets

import (
	"sort"
	"sync"

	logger "github.com/PolarWolf314/envault/internal/logging"
)

// Cache holds the variables loaded for each config this session, keyed by
// the absolute config path. It lives for the process only.
type Cache struct {
	mu     sync.RWMutex
	data   map[string]map[string]string
	Logger logger.Logger
}

// NewCache creates an empty cache.
func NewCache(log logger.Logger) *Cache {
	return &Cache{
		data:   make(map[string]map[string]string),
		Logger: log,
	}
}

// Store caches env for configFile, replacing any previous entry.
func (c *Cache) Store(configFile string, env map[string]string) {
	if configFile == "" {
		c.Logger.Warnf("unable to cache env; no config provided")
		return
	}

	c.Logger.Debugf("storing environment for %s", configFile)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[configFile] = copyEnv(env)
}

// Clear removes the entry for configFile, if any.
func (c *Cache) Clear(configFile string) {
	c.Logger.Debugf("deleting environment for %s", configFile)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, configFile)
}

// Fetch returns a copy of the variables for configFile, or an empty map
// when nothing is stored.
func (c *Cache) Fetch(configFile string) map[string]string {
	c.Logger.Debugf("using environment for %s", configFile)

	c.mu.RLock()
	defer c.mu.RUnlock()

	env, ok := c.data[configFile]
	if !ok {
		c.Logger.Debugf("no environment available; using empty default")
		return map[string]string{}
	}
	return copyEnv(env)
}

// Has reports whether configFile has been loaded this session.
func (c *Cache) Has(configFile string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.data[configFile]
	return ok
}

// Configs returns the cached config paths, sorted.
func (c *Cache) Configs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := make([]string, 0, len(c.data))
	for p := range c.data {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func copyEnv(env map[string]string) map[string]string {
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}
