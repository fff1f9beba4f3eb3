package server

import (
	"fmt"
	"log"

	"github.com/JoelDorrington/hexglobe/grid"
	"github.com/JoelDorrington/hexglobe/internal/config"
	"github.com/JoelDorrington/hexglobe/internal/network"
	"github.com/JoelDorrington/hexglobe/lookup"
	"github.com/JoelDorrington/hexglobe/path"
	"github.com/JoelDorrington/hexglobe/state"
	"github.com/JoelDorrington/hexglobe/worldgen"
)

// World bundles one topology build with its index-aligned companions.
// The topology and lookup are immutable; Cells and the pathfinding
// scratch are touched only by the session's command loop.
type World struct {
	Topo   *grid.Topology
	Cells  *state.State
	Lookup *lookup.Lookup

	finder  *path.Finder
	pathBuf path.Buffer
}

// NewWorld generates the globe and builds every core structure over it.
func NewWorld(cfg *config.Config) (*World, error) {
	records, err := worldgen.Generate(worldgen.Config{
		Subdivisions:  cfg.Grid.Subdivisions,
		MaxPopulation: cfg.Grid.MaxPopulation,
	})
	if err != nil {
		return nil, err
	}

	var idx grid.Index
	switch cfg.Grid.Index {
	case "dense":
		idx = grid.NewDenseIndex()
	default:
		idx = grid.NewSparseIndex()
	}

	topo, err := grid.Build(records, idx)
	if err != nil {
		return nil, fmt.Errorf("failed to build topology: %w", err)
	}

	w := &World{
		Topo:   topo,
		Cells:  state.New(topo, records),
		Lookup: lookup.New(topo, cfg.Lookup.BucketsPerAxis),
		finder: path.NewFinder(topo.NodeCount()),
	}
	log.Printf("World built: %d cells, checksum %016x", topo.NodeCount(), topo.Checksum())
	return w, nil
}

// FindPath runs the session-owned pathfinder and returns the path as
// tile ids. Must only be called from the session command loop.
func (w *World) FindPath(start, goal int32) (tiles []int64, cost float64, found bool) {
	cost, found = w.finder.TryFindPath(w.Topo, start, goal, &w.pathBuf)
	if !found {
		return nil, 0, false
	}
	tiles = make([]int64, w.pathBuf.Count)
	for i, n := range w.pathBuf.Path() {
		tiles[i] = int64(w.Topo.TileIDs[n])
	}
	return tiles, cost, true
}

// CellState snapshots one cell for the wire.
func (w *World) CellState(node int32) network.CellState {
	return network.CellState{
		Tile:       int64(w.Topo.TileIDs[node]),
		Node:       node,
		Population: w.Cells.Population[node],
		MaxPop:     w.Cells.MaxPopulation[node],
		Allegiance: w.Cells.Allegiance[node],
		HasUnit:    w.Cells.HasUnit[node],
		UnitID:     w.Cells.UnitID[node],
	}
}

// ResolveTile maps a wire tile id to a node index.
func (w *World) ResolveTile(tile int64) (int32, bool) {
	return w.Topo.TryGetIndex(grid.TileID(tile))
}
