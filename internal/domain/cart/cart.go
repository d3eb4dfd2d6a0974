package cart

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

type Line struct {
	TicketCategoryID uuid.UUID
	Quantity         int32
}

// Cart is a user's ephemeral pre-checkout selection. It is advisory staging
// state only: stock is re-validated against the ledger at checkout time
// regardless of what the cart last saw.
type Cart struct {
	lines      []Line
	totalItems int32
}

func New() *Cart {
	return &Cart{}
}

func Reconstruct(lines []Line) *Cart {
	c := &Cart{lines: append([]Line(nil), lines...)}
	c.recomputeTotal()
	return c
}

// QuantityOf returns the quantity already staged for the given category,
// zero when the category is not in the cart.
func (c *Cart) QuantityOf(categoryID uuid.UUID) int32 {
	for _, l := range c.lines {
		if l.TicketCategoryID == categoryID {
			return l.Quantity
		}
	}
	return 0
}

// Add merges the quantity into an existing line or appends a new one.
func (c *Cart) Add(categoryID uuid.UUID, quantity int32) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	for i := range c.lines {
		if c.lines[i].TicketCategoryID == categoryID {
			c.lines[i].Quantity += quantity
			c.recomputeTotal()
			return nil
		}
	}

	c.lines = append(c.lines, Line{TicketCategoryID: categoryID, Quantity: quantity})
	c.recomputeTotal()
	return nil
}

func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

func (c *Cart) TotalItems() int32 {
	return c.totalItems
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) recomputeTotal() {
	var total int32
	for _, l := range c.lines {
		total += l.Quantity
	}
	c.totalItems = total
}
