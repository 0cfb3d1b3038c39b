package impulse

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
)

const defaultCellSize = 100.0

// SpatialGrid is the broad phase: a uniform hash grid bucketing colliders by
// the cells their bounds span. It is rebuilt from scratch every step, which
// keeps it correct under fast-moving or resizing shapes without incremental
// bookkeeping.
type SpatialGrid struct {
	cellSize float64
	cells    map[uint64][]*Collider
}

func NewSpatialGrid(cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]*Collider),
	}
}

func (g *SpatialGrid) CellSize() float64 { return g.cellSize }

func (g *SpatialGrid) Clear() {
	clear(g.cells)
}

// Insert buckets a collider into every cell its bounds touch.
func (g *SpatialGrid) Insert(c *Collider) {
	bounds := c.Bounds()
	minX, minY := g.cellCoord(bounds.Min.X), g.cellCoord(bounds.Min.Y)
	maxX, maxY := g.cellCoord(bounds.Max.X), g.cellCoord(bounds.Max.Y)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			key := cellKey(x, y)
			g.cells[key] = append(g.cells[key], c)
		}
	}
}

// QueryAABB returns every inserted collider whose cell range intersects the
// query box, deduplicated, in id order.
func (g *SpatialGrid) QueryAABB(box AABB) []*Collider {
	minX, minY := g.cellCoord(box.Min.X), g.cellCoord(box.Min.Y)
	maxX, maxY := g.cellCoord(box.Max.X), g.cellCoord(box.Max.Y)

	seen := make(map[ColliderID]struct{})
	var results []*Collider
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for _, c := range g.cells[cellKey(x, y)] {
				if _, ok := seen[c.id]; ok {
					continue
				}
				seen[c.id] = struct{}{}
				results = append(results, c)
			}
		}
	}
	slices.SortFunc(results, func(a, b *Collider) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return results
}

// CandidatePairs enumerates unordered collider pairs sharing at least one
// cell. A pair spanning several shared cells appears exactly once; the result
// is sorted by canonical pair key so step processing is deterministic.
func (g *SpatialGrid) CandidatePairs() [][2]*Collider {
	seen := make(map[PairKey]struct{})
	var pairs [][2]*Collider

	for _, cell := range g.cells {
		for i := 0; i < len(cell); i++ {
			for j := i + 1; j < len(cell); j++ {
				a, b := cell[i], cell[j]
				key := makePairKey(a.id, b.id)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				pairs = append(pairs, [2]*Collider{a, b})
			}
		}
	}

	slices.SortFunc(pairs, func(p, q [2]*Collider) int {
		return comparePairKeys(makePairKey(p[0].id, p[1].id), makePairKey(q[0].id, q[1].id))
	})
	return pairs
}

func (g *SpatialGrid) cellCoord(v float64) int64 {
	return int64(math.Floor(v / g.cellSize))
}

// cellKey hashes the integer cell coordinates into the bucket key.
func cellKey(x, y int64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(x))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(y))
	return xxhash.Sum64(buf[:])
}
