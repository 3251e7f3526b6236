package game

type ChangeKind string

const (
	ChangeNew         ChangeKind = "new"
	ChangeRemoved     ChangeKind = "removed"
	ChangeModified    ChangeKind = "modified"
	ChangeActivated   ChangeKind = "activated"
	ChangeDeactivated ChangeKind = "deactivated"
)

type CellDiff struct {
	X       int
	Y       int
	Kind    ChangeKind
	OldCell Cell
	NewCell Cell
}

type StateDiff struct {
	Cells   []CellDiff
	IPDelta int // change of the IP of the player to move in the old state
}

// Diff lists the cells that changed between two states in scan order. An
// activity flip takes precedence over environment or trait changes.
func Diff(old, next *GameState) StateDiff {
	d := StateDiff{
		IPDelta: next.PlayerIP[old.CurrentPlayer] - old.PlayerIP[old.CurrentPlayer],
	}

	for y := range old.Board {
		for x := range old.Board[y] {
			before, after := old.Board[y][x], next.Board[y][x]
			kind, changed := cellChange(before, after)
			if changed {
				d.Cells = append(d.Cells, CellDiff{X: x, Y: y, Kind: kind, OldCell: before, NewCell: after})
			}
		}
	}
	return d
}

func cellChange(before, after Cell) (ChangeKind, bool) {
	envChanged := before.Nutrient != after.Nutrient || before.Moisture != after.Moisture
	switch {
	case before.Occupant == nil && after.Occupant != nil:
		return ChangeNew, true
	case before.Occupant != nil && after.Occupant == nil:
		return ChangeRemoved, true
	case before.Occupant == nil:
		return ChangeModified, envChanged
	}

	if before.Occupant.Active != after.Occupant.Active {
		if after.Occupant.Active {
			return ChangeActivated, true
		}
		return ChangeDeactivated, true
	}
	biasChanged := before.Occupant.Traits.SpreadBias != after.Occupant.Traits.SpreadBias
	return ChangeModified, envChanged || biasChanged
}
