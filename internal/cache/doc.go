// Package cache provides a bounded least-recently-used cache.
//
// The resource factory uses it to keep compiled shader code across
// pipeline rebuilds:
//
//	c := cache.New[string, []uint32](64)
//	words, err := c.GetOrCreate(source, func() ([]uint32, error) {
//		return compile(source)
//	})
//
// A failed create is not cached, so the next lookup retries it.
package cache
