// Package facility provides buildable facility types, the catalog that holds
// them, and facility instances under construction.
package facility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Category classifies what a facility mainly contributes to.
type Category uint8

const (
	CategoryLifeQuality Category = iota // Housing, health, culture
	CategoryEconomy                     // Industry, trade
	CategoryEnvironment                 // Parks, clean energy
)

// CategoryName returns the canonical upper-case name for a category.
func CategoryName(c Category) string {
	switch c {
	case CategoryLifeQuality:
		return "LIFE_QUALITY"
	case CategoryEconomy:
		return "ECONOMY"
	case CategoryEnvironment:
		return "ENVIRONMENT"
	default:
		return "UNKNOWN"
	}
}

func (c Category) String() string { return CategoryName(c) }

// ParseCategory accepts either the ordinal ("0".."2") or the canonical name.
func ParseCategory(s string) (Category, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > int(CategoryEnvironment) {
			return 0, fmt.Errorf("%w: category %d out of range", ErrInvalidType, n)
		}
		return Category(n), nil
	}
	for c := CategoryLifeQuality; c <= CategoryEnvironment; c++ {
		if strings.EqualFold(CategoryName(c), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown category %q", ErrInvalidType, s)
}

// Type is an immutable catalog entry. Cost doubles as construction time in ticks.
type Type struct {
	Name        string   `json:"name" validate:"required"`
	Category    Category `json:"category" validate:"lte=2"`
	Cost        int      `json:"cost" validate:"gt=0"`
	LifeQuality int      `json:"life_quality"`
	Economy     int      `json:"economy"`
	Environment int      `json:"environment"`
}

var validate = validator.New()

// NewType builds a validated facility type.
func NewType(name string, category Category, cost, lifeQuality, economy, environment int) (Type, error) {
	t := Type{
		Name:        name,
		Category:    category,
		Cost:        cost,
		LifeQuality: lifeQuality,
		Economy:     economy,
		Environment: environment,
	}
	if err := t.Validate(); err != nil {
		return Type{}, err
	}
	return t, nil
}

// Validate checks the construction contract: a name and a positive cost.
func (t Type) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidType, t.Name, err)
	}
	return nil
}

// Scores returns the three impact scores of t.
func (t Type) Scores() Scores {
	return Scores{LifeQuality: t.LifeQuality, Economy: t.Economy, Environment: t.Environment}
}

// Scores is a life-quality/economy/environment triple.
type Scores struct {
	LifeQuality int `json:"life_quality"`
	Economy     int `json:"economy"`
	Environment int `json:"environment"`
}

// Add returns the element-wise sum.
func (s Scores) Add(o Scores) Scores {
	return Scores{
		LifeQuality: s.LifeQuality + o.LifeQuality,
		Economy:     s.Economy + o.Economy,
		Environment: s.Environment + o.Environment,
	}
}
