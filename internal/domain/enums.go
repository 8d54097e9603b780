package domain

import "fmt"

// Unit is the measuring unit of an ingredient row.
type Unit string

const (
	UnitEL        Unit = "EL"
	UnitTL        Unit = "TL"
	UnitStueck    Unit = "Stück"
	UnitL         Unit = "L"
	UnitML        Unit = "ml"
	UnitG         Unit = "g"
	UnitKG        Unit = "kg"
	UnitPrise     Unit = "Prise"
	UnitPaeckchen Unit = "Päckchen"
	UnitDose      Unit = "Dose"
	UnitBund      Unit = "Bund"
	UnitScheibe   Unit = "Scheibe"
	UnitTasse     Unit = "Tasse"
)

// DefaultUnit is preselected on every new ingredient row.
const DefaultUnit = UnitEL

var units = []Unit{
	UnitEL, UnitTL, UnitStueck, UnitL, UnitML, UnitG, UnitKG,
	UnitPrise, UnitPaeckchen, UnitDose, UnitBund, UnitScheibe, UnitTasse,
}

// ValidUnits is the canonical set of accepted unit strings.
var ValidUnits = func() map[Unit]bool {
	m := make(map[Unit]bool, len(units))
	for _, u := range units {
		m[u] = true
	}
	return m
}()

// Units returns the unit vocabulary in display order.
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// ParseUnit returns the Unit for s, or an error if s is not in the vocabulary.
// Matching is exact; "Stück" and "stück" are different strings.
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if !ValidUnits[u] {
		return "", fmt.Errorf("unknown unit %q", s)
	}
	return u, nil
}

// Difficulty bounds for the five-glyph rating.
const (
	MinDifficulty = 0
	MaxDifficulty = 5
)
