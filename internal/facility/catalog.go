package facility

import "fmt"

// Catalog is the ordered, append-only set of buildable types shared by every
// plan in a simulation. Order is insertion order and never changes.
type Catalog struct {
	types []Type
	index map[string]int // name → position
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Add appends a validated type. Names are unique.
func (c *Catalog) Add(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, ok := c.index[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
	}
	c.index[t.Name] = len(c.types)
	c.types = append(c.types, t)
	return nil
}

// Types returns the catalog in order. The slice is shared and must be treated
// as read-only; its capacity is clipped so appends never alias the catalog.
func (c *Catalog) Types() []Type {
	return c.types[:len(c.types):len(c.types)]
}

// Len returns the number of types in the catalog.
func (c *Catalog) Len() int {
	return len(c.types)
}
