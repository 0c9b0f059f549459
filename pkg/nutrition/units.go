package nutrition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unit is a canonical serving unit.
type Unit string

const (
	UnitCup     Unit = "cup"
	UnitTbsp    Unit = "tbsp"
	UnitTsp     Unit = "tsp"
	UnitEach    Unit = "each"
	UnitPackage Unit = "package"
)

// ErrUnknownUnit is returned by ParseUnit for labels with no alias.
var ErrUnknownUnit = errors.New("unknown serving unit")

// volumeRatio is expressed in cup-equivalents.
var volumeRatio = map[Unit]float64{
	UnitCup:  1,
	UnitTbsp: 1.0 / 16,
	UnitTsp:  1.0 / 48,
}

var unitAliases = map[string]Unit{
	"cup":        UnitCup,
	"cups":       UnitCup,
	"c":          UnitCup,
	"tbsp":       UnitTbsp,
	"tablespoon": UnitTbsp,
	"tsp":        UnitTsp,
	"teaspoon":   UnitTsp,
	"each":       UnitEach,
	"ea":         UnitEach,
	"package":    UnitPackage,
	"packages":   UnitPackage,
	"pkg":        UnitPackage,
}

// ParseUnit maps a user supplied unit label onto a Unit.
func ParseUnit(s string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// IsVolume reports whether u converts through the cup ratio table.
func (u Unit) IsVolume() bool {
	_, ok := volumeRatio[u]
	return ok
}

// Valid reports whether u is one of the known serving units.
func (u Unit) Valid() bool {
	return u.IsVolume() || u == UnitEach || u == UnitPackage
}

// ServingSpec is the quantity and unit a user picked for one line item.
type ServingSpec struct {
	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
}

// Factor is the multiplier applied to a per-cup reference profile.
func (s ServingSpec) Factor() float64 {
	if ratio, ok := volumeRatio[s.Unit]; ok {
		return s.Quantity * ratio
	}
	return s.Quantity
}

// Describe renders the serving as shown next to a line item.
func (s ServingSpec) Describe() string {
	qty := formatQuantity(s.Quantity)
	switch s.Unit {
	case UnitEach:
		return qty
	case UnitPackage:
		if s.Quantity == 1 {
			return qty + " package"
		}
		return qty + " packages"
	default:
		return qty + " " + string(s.Unit)
	}
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
