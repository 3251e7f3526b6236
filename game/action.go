package game

import (
	"cmp"
	"encoding/json"
	"fmt"
)

type ActionKind string

const (
	KindSeedSpecies   ActionKind = "SeedSpecies"
	KindManipulateEnv ActionKind = "ManipulateEnv"
	KindMutate        ActionKind = "Mutate"
	KindEndTurn       ActionKind = "EndTurn"
)

// Action is a tagged union of the four player actions. Only the fields of
// the variant named by Kind are meaningful; the rest stay zero so actions
// can be compared with == and used as map keys.
type Action struct {
	Kind    ActionKind
	Species Species   // SeedSpecies
	X       int       // SeedSpecies, ManipulateEnv, Mutate
	Y       int       // SeedSpecies, ManipulateEnv, Mutate
	Target  Target    // ManipulateEnv
	Delta   int       // ManipulateEnv, +1 or -1
	Dir     Direction // Mutate
}

func SeedSpecies(species Species, x, y int) Action {
	return Action{Kind: KindSeedSpecies, Species: species, X: x, Y: y}
}

func ManipulateEnv(x, y int, target Target, delta int) Action {
	return Action{Kind: KindManipulateEnv, X: x, Y: y, Target: target, Delta: delta}
}

func Mutate(x, y int, dir Direction) Action {
	return Action{Kind: KindMutate, X: x, Y: y, Dir: dir}
}

func EndTurn() Action {
	return Action{Kind: KindEndTurn}
}

// Cost is the IP an action spends.
func (a Action) Cost() int {
	switch a.Kind {
	case KindSeedSpecies:
		return 2
	case KindManipulateEnv:
		return 1
	case KindMutate:
		return 3
	default:
		return 0
	}
}

func (a Action) String() string {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Sprintf("{%q}", a.Kind)
	}
	return string(data)
}

// CompareActions is the canonical total order on actions used to break ties:
// kind name first, then the variant's fields in wire order. Strings compare
// byte-wise and integers numerically.
func CompareActions(a, b Action) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	switch a.Kind {
	case KindSeedSpecies:
		return firstNonZero(
			cmp.Compare(a.Species, b.Species),
			cmp.Compare(a.X, b.X),
			cmp.Compare(a.Y, b.Y),
		)
	case KindManipulateEnv:
		return firstNonZero(
			cmp.Compare(a.X, b.X),
			cmp.Compare(a.Y, b.Y),
			cmp.Compare(a.Target, b.Target),
			cmp.Compare(a.Delta, b.Delta),
		)
	case KindMutate:
		return firstNonZero(
			cmp.Compare(a.X, b.X),
			cmp.Compare(a.Y, b.Y),
			cmp.Compare(a.Dir, b.Dir),
		)
	default:
		return 0
	}
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

type seedJSON struct {
	Type    ActionKind `json:"type"`
	Species Species    `json:"species"`
	X       int        `json:"x"`
	Y       int        `json:"y"`
}

type manipulateJSON struct {
	Type   ActionKind `json:"type"`
	X      int        `json:"x"`
	Y      int        `json:"y"`
	Target Target     `json:"target"`
	Delta  int        `json:"delta"`
}

type mutateJSON struct {
	Type ActionKind `json:"type"`
	X    int        `json:"x"`
	Y    int        `json:"y"`
	Dir  Direction  `json:"dir"`
}

type endTurnJSON struct {
	Type ActionKind `json:"type"`
}

func (a Action) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case KindSeedSpecies:
		return json.Marshal(seedJSON{a.Kind, a.Species, a.X, a.Y})
	case KindManipulateEnv:
		return json.Marshal(manipulateJSON{a.Kind, a.X, a.Y, a.Target, a.Delta})
	case KindMutate:
		return json.Marshal(mutateJSON{a.Kind, a.X, a.Y, a.Dir})
	case KindEndTurn:
		return json.Marshal(endTurnJSON{a.Kind})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    *ActionKind `json:"type"`
		Species *Species    `json:"species"`
		X       *int        `json:"x"`
		Y       *int        `json:"y"`
		Target  *Target     `json:"target"`
		Delta   *int        `json:"delta"`
		Dir     *Direction  `json:"dir"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == nil {
		return fmt.Errorf("%w: missing type", ErrUnknownAction)
	}

	coords := func() (int, int, error) {
		if raw.X == nil || raw.Y == nil {
			return 0, 0, fmt.Errorf("%s action requires x and y", *raw.Type)
		}
		return *raw.X, *raw.Y, nil
	}

	switch *raw.Type {
	case KindSeedSpecies:
		x, y, err := coords()
		if err != nil {
			return err
		}
		if raw.Species == nil || !raw.Species.Valid() {
			return fmt.Errorf("SeedSpecies action requires a valid species")
		}
		*a = SeedSpecies(*raw.Species, x, y)
	case KindManipulateEnv:
		x, y, err := coords()
		if err != nil {
			return err
		}
		if raw.Target == nil || !raw.Target.Valid() {
			return fmt.Errorf("ManipulateEnv action requires target N or M")
		}
		if raw.Delta == nil || (*raw.Delta != 1 && *raw.Delta != -1) {
			return fmt.Errorf("ManipulateEnv action requires delta 1 or -1")
		}
		*a = ManipulateEnv(x, y, *raw.Target, *raw.Delta)
	case KindMutate:
		x, y, err := coords()
		if err != nil {
			return err
		}
		if raw.Dir == nil || !raw.Dir.Valid() {
			return fmt.Errorf("Mutate action requires a valid dir")
		}
		*a = Mutate(x, y, *raw.Dir)
	case KindEndTurn:
		*a = EndTurn()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, *raw.Type)
	}
	return nil
}
