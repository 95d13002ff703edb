package world

import (
	"voxel-viewer/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// ChangePoint places (place=true) or removes a block at the cell nearest to the
// world-space point. It reports whether the grid changed.
func (w *World) ChangePoint(pos mgl32.Vec3, place bool) bool {
	return w.ChangeCell(w.WorldToGrid(pos), place)
}

// ChangeCell places or removes the block at p and keeps the visible cache in
// step. Requests that already hold and cells outside the grid are no-ops.
func (w *World) ChangeCell(p GridPos, place bool) bool {
	if !w.grid.inBounds(p) {
		return false
	}
	if w.grid.get(p).IsAir() != place {
		return false
	}
	defer profiling.Track("world.ChangeCell")()

	if place {
		w.place(p)
		w.stats.Total++
	} else {
		w.remove(p)
		w.stats.Total--
	}
	w.stats.Edits++
	w.touch()
	return true
}

func (w *World) place(p GridPos) {
	w.grid.set(p, w.opts.PlaceBlock)
	if w.cache == nil {
		return
	}

	if !w.opts.PruneOnPlace {
		w.addCache(p)
		return
	}

	if w.IsExposed(p) {
		w.addCache(p)
	}
	for _, d := range neighbourOffsets {
		n := p.Add(d[0], d[1], d[2])
		if w.grid.get(n).IsAir() || w.IsExposed(n) {
			continue
		}
		w.cache.remove(n)
	}
}

func (w *World) remove(p GridPos) {
	wasExposed := w.IsExposed(p)
	w.grid.set(p, BlockAir)
	if w.cache == nil {
		return
	}

	if !w.cache.remove(p) && wasExposed {
		w.log.Warnf("visible cache lost block %v; dropping cache until next rebuild", p)
		w.stats.Desyncs++
		w.cache = nil
		return
	}

	revealed := make([]GridPos, 0, len(neighbourOffsets))
	for _, d := range neighbourOffsets {
		n := p.Add(d[0], d[1], d[2])
		if !w.grid.get(n).IsAir() {
			revealed = append(revealed, n)
		}
	}
	w.addCache(revealed...)
}
