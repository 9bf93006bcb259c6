// Package units converts quantities between units of the same category
// (length, weight, area, volume) by pivoting through the category's base unit.
package units

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Dan9191/calc-service/internal/utils"
	"gopkg.in/yaml.v3"
)

// Precision is the number of decimal places kept in converted values.
const Precision = 6

var (
	ErrInvalidInput    = errors.New("amount is not a number")
	ErrUnknownCategory = errors.New("unknown unit category")
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrInvalidTable    = errors.New("invalid unit table")
)

//go:embed units.yaml
var defaultTable []byte

// Unit is a single measurement unit. ScaleToBase converts one of it into
// the category's base unit.
type Unit struct {
	Symbol      string  `json:"symbol" yaml:"symbol" msgpack:"symbol"`
	Name        string  `json:"name" yaml:"name" msgpack:"name"`
	ScaleToBase float64 `json:"scale_to_base" yaml:"scale_to_base" msgpack:"scale_to_base"`
}

// Category is an ordered set of mutually convertible units.
type Category struct {
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Units []Unit `json:"units" yaml:"units" msgpack:"units"`
}

// Base returns the category's base unit.
func (c Category) Base() Unit {
	for _, u := range c.Units {
		if u.ScaleToBase == 1 {
			return u
		}
	}
	return Unit{}
}

// Conversion is one row of a ConvertAll listing.
type Conversion struct {
	Unit  string  `json:"unit" msgpack:"unit"`
	Value float64 `json:"value" msgpack:"value"`
}

// Table is the read-only set of categories. It is built once at startup.
type Table struct {
	categories []Category
	index      map[string]int
	scales     []map[string]float64
}

type tableFile struct {
	Categories []Category `yaml:"categories"`
}

// Default returns the table compiled into the binary.
func Default() (*Table, error) {
	return Load(defaultTable)
}

// Load parses a YAML unit table.
func Load(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse unit table: %w", err)
	}
	return NewTable(f.Categories)
}

// NewTable validates the categories and indexes them for lookup.
func NewTable(categories []Category) (*Table, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidTable)
	}
	t := &Table{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
		scales:     make([]map[string]float64, 0, len(categories)),
	}
	for _, c := range categories {
		key := strings.ToLower(c.Name)
		if key == "" {
			return nil, fmt.Errorf("%w: category without a name", ErrInvalidTable)
		}
		if _, dup := t.index[key]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidTable, c.Name)
		}
		if len(c.Units) < 2 {
			return nil, fmt.Errorf("%w: category %q needs at least two units", ErrInvalidTable, c.Name)
		}
		scales := make(map[string]float64, len(c.Units))
		bases := 0
		for _, u := range c.Units {
			if u.Symbol == "" {
				return nil, fmt.Errorf("%w: unit without a symbol in %q", ErrInvalidTable, c.Name)
			}
			if !(u.ScaleToBase > 0) || math.IsInf(u.ScaleToBase, 0) {
				return nil, fmt.Errorf("%w: unit %q has scale %v", ErrInvalidTable, u.Symbol, u.ScaleToBase)
			}
			if _, dup := scales[u.Symbol]; dup {
				return nil, fmt.Errorf("%w: duplicate unit %q in %q", ErrInvalidTable, u.Symbol, c.Name)
			}
			if u.ScaleToBase == 1 {
				bases++
			}
			scales[u.Symbol] = u.ScaleToBase
		}
		if bases != 1 {
			return nil, fmt.Errorf("%w: category %q must have exactly one base unit, has %d", ErrInvalidTable, c.Name, bases)
		}
		units := make([]Unit, len(c.Units))
		copy(units, c.Units)
		t.index[key] = len(t.categories)
		t.categories = append(t.categories, Category{Name: c.Name, Units: units})
		t.scales = append(t.scales, scales)
	}
	return t, nil
}

// Categories returns the categories in declaration order.
func (t *Table) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		units := make([]Unit, len(c.Units))
		copy(units, c.Units)
		out[i] = Category{Name: c.Name, Units: units}
	}
	return out
}

// Category looks a category up by name, ignoring case.
func (t *Table) Category(name string) (Category, bool) {
	i, ok := t.index[strings.ToLower(name)]
	if !ok {
		return Category{}, false
	}
	return t.categories[i], true
}

// DefaultPair is the unit pair selected when a category is picked: its
// first two declared units.
func (t *Table) DefaultPair(category string) (from, to string, err error) {
	c, ok := t.Category(category)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return c.Units[0].Symbol, c.Units[1].Symbol, nil
}

// Convert converts amount from one unit to another within a category.
// Units of other categories are unknown here, so cross-category conversion
// fails with ErrUnknownUnit.
func (t *Table) Convert(amount float64, category, from, to string) (float64, error) {
	if !utils.IsFinite(amount) {
		return 0, ErrInvalidInput
	}
	scales, err := t.scalesFor(category)
	if err != nil {
		return 0, err
	}
	fromScale, ok := scales[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q in %s", ErrUnknownUnit, from, category)
	}
	toScale, ok := scales[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q in %s", ErrUnknownUnit, to, category)
	}
	if from == to {
		return utils.Round(amount, Precision), nil
	}
	v := amount * fromScale / toScale
	if !utils.IsFinite(v) {
		return 0, fmt.Errorf("%w: result out of range", ErrInvalidInput)
	}
	return utils.Round(v, Precision), nil
}

// ConvertAll converts amount into every other unit of the category, in
// declaration order.
func (t *Table) ConvertAll(amount float64, category, from string) ([]Conversion, error) {
	c, ok := t.Category(category)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	out := make([]Conversion, 0, len(c.Units)-1)
	for _, u := range c.Units {
		if u.Symbol == from {
			continue
		}
		v, err := t.Convert(amount, c.Name, from, u.Symbol)
		if err != nil {
			return nil, err
		}
		out = append(out, Conversion{Unit: u.Symbol, Value: v})
	}
	return out, nil
}

func (t *Table) scalesFor(category string) (map[string]float64, error) {
	i, ok := t.index[strings.ToLower(category)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return t.scales[i], nil
}
