package world

import (
	"voxel-viewer/internal/profiling"
)

// InstanceStride is the number of int16 values per cache entry: gx, gy, gz and
// the texture index.
const InstanceStride = 4

// instanceCache is the packed list of exposed cells. data may carry spare
// capacity past count entries.
type instanceCache struct {
	data  []int16
	count int
	live  map[GridPos]struct{}
}

func newInstanceCache(capacity int) *instanceCache {
	return &instanceCache{
		data: make([]int16, capacity*InstanceStride),
		live: make(map[GridPos]struct{}, capacity),
	}
}

func (c *instanceCache) capacity() int { return len(c.data) / InstanceStride }

func (c *instanceCache) contains(p GridPos) bool {
	_, ok := c.live[p]
	return ok
}

// instances returns the live region.
func (c *instanceCache) instances() []int16 {
	return c.data[:c.count*InstanceStride]
}

func (c *instanceCache) put(i int, p GridPos, tex int16) {
	o := i * InstanceStride
	c.data[o] = int16(p.X)
	c.data[o+1] = int16(p.Y)
	c.data[o+2] = int16(p.Z)
	c.data[o+3] = tex
}

// add appends entries whose position is not already live. When spare capacity
// runs out the backing slice is reallocated to fit exactly.
func (c *instanceCache) add(entries []cacheEntry) int {
	fresh := make([]cacheEntry, 0, len(entries))
	for _, e := range entries {
		if c.contains(e.pos) {
			continue
		}
		c.live[e.pos] = struct{}{}
		fresh = append(fresh, e)
	}
	if len(fresh) == 0 {
		return 0
	}

	if need := c.count + len(fresh); need > c.capacity() {
		grown := make([]int16, need*InstanceStride)
		copy(grown, c.instances())
		c.data = grown
	}
	for _, e := range fresh {
		c.put(c.count, e.pos, e.tex)
		c.count++
	}
	return len(fresh)
}

// remove deletes the entry at p, shifting later entries down one slot. It
// reports whether p was found.
func (c *instanceCache) remove(p GridPos) bool {
	if !c.contains(p) {
		return false
	}
	x, y, z := int16(p.X), int16(p.Y), int16(p.Z)
	for i := 0; i < c.count; i++ {
		o := i * InstanceStride
		if c.data[o] != x || c.data[o+1] != y || c.data[o+2] != z {
			continue
		}
		copy(c.data[o:], c.data[o+InstanceStride:c.count*InstanceStride])
		c.count--
		delete(c.live, p)
		return true
	}
	return false
}

type cacheEntry struct {
	pos GridPos
	tex int16
}

// FillOffsetCache builds the visible cache from a full grid scan. It does
// nothing while the cache exists.
func (w *World) FillOffsetCache() {
	if w.cache != nil {
		return
	}
	defer profiling.Track("world.FillOffsetCache")()

	entries := w.scanExposed()
	w.cache = newInstanceCache(len(entries))
	w.cache.add(entries)
	w.stats.Rebuilds++
	w.touch()
	w.log.Debugf("visible cache rebuilt: %d of %d blocks exposed", w.cache.count, w.stats.Total)
}

// scanExposed lists every exposed solid cell in z, x, y order.
func (w *World) scanExposed() []cacheEntry {
	var entries []cacheEntry
	g := w.grid
	for z := 0; z < g.depth(); z++ {
		for x := 0; x < g.width(z); x++ {
			col := g.columns[g.rowStart[z]+x]
			for y := 0; y < col.height; y++ {
				b := g.cells[col.offset+y]
				if b.IsAir() {
					continue
				}
				p := GridPos{x, y, z}
				if w.IsExposed(p) {
					entries = append(entries, cacheEntry{pos: p, tex: b.TextureIndex()})
				}
			}
		}
	}
	return entries
}

// addCache appends blocks to a live cache, skipping positions already present.
func (w *World) addCache(positions ...GridPos) {
	if w.cache == nil || len(positions) == 0 {
		return
	}
	entries := make([]cacheEntry, 0, len(positions))
	for _, p := range positions {
		entries = append(entries, cacheEntry{pos: p, tex: w.grid.get(p).TextureIndex()})
	}
	if w.cache.add(entries) > 0 {
		w.touch()
	}
}

// Instances returns the live cache entries, InstanceStride values each. The
// slice aliases the cache and is valid until the next edit.
func (w *World) Instances() []int16 {
	if w.cache == nil {
		return nil
	}
	return w.cache.instances()
}

// Visible reports whether p currently has a cache entry.
func (w *World) Visible(p GridPos) bool {
	return w.cache != nil && w.cache.contains(p)
}
