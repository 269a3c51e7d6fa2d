// Package social provides settlements and the registry that names them.
package social

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrDuplicateSettlement is returned when a settlement name is already registered.
	ErrDuplicateSettlement = errors.New("settlement already exists")

	// ErrInvalidSettlement is returned for a settlement that fails validation.
	ErrInvalidSettlement = errors.New("invalid settlement")
)

// Class categorizes settlement scale. Its ordinal fixes construction capacity.
type Class uint8

const (
	ClassVillage    Class = iota // One concurrent construction
	ClassCity                    // Two
	ClassMetropolis              // Three
)

// ClassName returns the upper-case display name for a class.
func ClassName(c Class) string {
	switch c {
	case ClassVillage:
		return "VILLAGE"
	case ClassCity:
		return "CITY"
	case ClassMetropolis:
		return "METROPOLIS"
	default:
		return "UNKNOWN"
	}
}

func (c Class) String() string { return ClassName(c) }

// ParseClass accepts the ordinal ("0".."2") or the display name in any case.
func ParseClass(s string) (Class, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > int(ClassMetropolis) {
			return 0, fmt.Errorf("%w: class %d out of range", ErrInvalidSettlement, n)
		}
		return Class(n), nil
	}
	for c := ClassVillage; c <= ClassMetropolis; c++ {
		if strings.EqualFold(ClassName(c), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown class %q", ErrInvalidSettlement, s)
}

// Settlement is an immutable population center. Plans copy it by value.
type Settlement struct {
	Name  string `json:"name" validate:"required"`
	Class Class  `json:"class" validate:"lte=2"`
}

var validate = validator.New()

// New builds a validated settlement.
func New(name string, class Class) (Settlement, error) {
	s := Settlement{Name: name, Class: class}
	if err := validate.Struct(s); err != nil {
		return Settlement{}, fmt.Errorf("%w %q: %v", ErrInvalidSettlement, name, err)
	}
	return s, nil
}

// Capacity is the number of facilities a plan for this settlement may build at once.
func (s Settlement) Capacity() int {
	return int(s.Class) + 1
}

func (s Settlement) String() string {
	return "Settlement Name: " + s.Name + ", Type: " + ClassName(s.Class)
}
