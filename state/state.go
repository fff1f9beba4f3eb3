// Package state holds the mutable per-cell gameplay attributes for one
// topology, index-aligned with its nodes.
//
// Mutations are not internally synchronized: a single authoritative
// goroutine (or a serialized command queue feeding one) must apply all
// Try* calls. Reads from other goroutines race with that writer and are
// only safe when routed through the same queue.
package state

import "github.com/JoelDorrington/hexglobe/grid"

// Neutral is the allegiance value of an unowned cell.
const Neutral = int32(-1)

// NoUnit is the unit id stored in a cell with no unit.
const NoUnit = int32(-1)

// State is a structure-of-arrays store with one slot per topology node.
// Its lifetime mirrors the topology it was built against; rebuilding the
// topology requires rebuilding the state.
type State struct {
	Population    []float64
	MaxPopulation []int32
	Allegiance    []int32
	HasUnit       []bool
	UnitID        []int32
}

// New allocates state for every node of topo and replays the records'
// optional seeds through the topology's index. Records whose tile id
// does not resolve are topology-only entries and are skipped.
func New(topo *grid.Topology, records []grid.TileRecord) *State {
	n := topo.NodeCount()
	s := &State{
		Population:    make([]float64, n),
		MaxPopulation: make([]int32, n),
		Allegiance:    make([]int32, n),
		HasUnit:       make([]bool, n),
		UnitID:        make([]int32, n),
	}
	for i := 0; i < n; i++ {
		s.Allegiance[i] = Neutral
		s.UnitID[i] = NoUnit
	}

	for _, r := range records {
		if r.Seed == nil {
			continue
		}
		idx, ok := topo.TryGetIndex(r.Tile)
		if !ok {
			continue
		}
		seed := *r.Seed
		if seed.MaxPopulation < 0 {
			seed.MaxPopulation = 0
		}
		s.MaxPopulation[idx] = seed.MaxPopulation
		pop := seed.Population
		if pop < 0 {
			pop = 0
		}
		if max := float64(seed.MaxPopulation); pop > max {
			pop = max
		}
		s.Population[idx] = pop
		s.Allegiance[idx] = seed.Allegiance
		if seed.HasUnit {
			s.HasUnit[idx] = true
			s.UnitID[idx] = seed.UnitID
		}
	}
	return s
}

// Count returns the number of cell slots.
func (s *State) Count() int { return len(s.Population) }

func (s *State) valid(i int32) bool {
	return i >= 0 && int(i) < len(s.Population)
}

// TrySpawnPopulation adds amount to the cell's population, clamped to
// its capacity; excess is discarded, not an error. Fails only for a
// non-positive amount or an invalid index.
func (s *State) TrySpawnPopulation(i int32, amount float64) bool {
	if !s.valid(i) || amount <= 0 {
		return false
	}
	pop := s.Population[i] + amount
	if max := float64(s.MaxPopulation[i]); pop > max {
		pop = max
	}
	s.Population[i] = pop
	return true
}

// TryPlaceUnit puts a unit into an empty cell.
// Fails if the cell is occupied or the index invalid.
func (s *State) TryPlaceUnit(i, unitID int32) bool {
	if !s.valid(i) || s.HasUnit[i] {
		return false
	}
	s.HasUnit[i] = true
	s.UnitID[i] = unitID
	return true
}

// TryMoveUnit moves the identified unit from one cell to another as a
// single logical step: every precondition is checked before either slot
// is written, so a false return leaves both cells untouched and a true
// return never duplicates or loses the unit.
func (s *State) TryMoveUnit(from, to, unitID int32) bool {
	if !s.valid(from) || !s.valid(to) {
		return false
	}
	if !s.HasUnit[from] || s.UnitID[from] != unitID {
		return false
	}
	if s.HasUnit[to] {
		return false
	}
	s.HasUnit[from] = false
	s.UnitID[from] = NoUnit
	s.HasUnit[to] = true
	s.UnitID[to] = unitID
	return true
}

// TryChangeAllegiance overwrites the cell's owner; always succeeds for a
// valid index.
func (s *State) TryChangeAllegiance(i, playerID int32) bool {
	if !s.valid(i) {
		return false
	}
	s.Allegiance[i] = playerID
	return true
}

// SamplePopulation reads a cell's population; invalid indices read as 0.
func (s *State) SamplePopulation(i int32) float64 {
	if !s.valid(i) {
		return 0
	}
	return s.Population[i]
}
