package cache

import (
	"sync"
	"time"
)

// ============================================================================
// CACHE - KEY/VALUE EN MEMORIA CON TTL
// ============================================================================
// Caché thread-safe con expiración automática. Lo usa el agregador para no
// repetir la consulta del padrón de empleados en cada carga del dashboard:
// el padrón cambia poco y cada rango de fechas lo necesita una sola vez.
//
// Uso:
//   c := cache.New(time.Minute, 5*time.Minute)
//   c.Set("roster", employees)
//   if v, found := c.Get("roster"); found { ... }

type item struct {
	value      interface{}
	expiration int64 // Unix nanos; 0 = sin expiración
}

// Cache es un almacén key-value con TTL por defecto y limpieza periódica.
type Cache struct {
	items             map[string]item
	mu                sync.RWMutex
	defaultExpiration time.Duration
	stopCleanup       chan struct{}
	stopOnce          sync.Once
}

// New crea un caché con TTL por defecto y un intervalo de limpieza de
// items expirados.
func New(defaultExpiration, cleanupInterval time.Duration) *Cache {
	c := &Cache{
		items:             make(map[string]item),
		defaultExpiration: defaultExpiration,
		stopCleanup:       make(chan struct{}),
	}
	go c.cleanupLoop(cleanupInterval)
	return c
}

// Set almacena un valor con la expiración por defecto.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.defaultExpiration)
}

// SetWithTTL almacena un valor con una expiración específica.
func (c *Cache) SetWithTTL(key string, value interface{}, duration time.Duration) {
	var expiration int64
	if duration > 0 {
		expiration = time.Now().Add(duration).UnixNano()
	}
	c.mu.Lock()
	c.items[key] = item{value: value, expiration: expiration}
	c.mu.Unlock()
}

// Get recupera un valor. Retorna (nil, false) si no existe o expiró.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	it, found := c.items[key]
	c.mu.RUnlock()

	if !found {
		return nil, false
	}
	if it.expiration > 0 && time.Now().UnixNano() > it.expiration {
		c.Delete(key)
		return nil, false
	}
	return it.value, true
}

// Delete elimina una key del caché.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Count retorna la cantidad de items (incluidos los aún no limpiados).
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stop detiene la goroutine de limpieza.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCleanup) })
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now().UnixNano()
			c.mu.Lock()
			for key, it := range c.items {
				if it.expiration > 0 && now > it.expiration {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}
