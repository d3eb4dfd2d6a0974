package ticket

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("ticket category name cannot be empty")
	ErrNegativePrice    = errors.New("ticket price cannot be negative")
	ErrNegativeQuantity = errors.New("ticket quantity cannot be negative")
)

// Category is a purchasable class of ticket for an event. Its quantity is
// the remaining sellable stock; every successful decrement is bounded by the
// quantity at decrement time, so it can never go negative.
type Category struct {
	id          uuid.UUID
	eventID     uuid.UUID
	name        string
	description string
	priceCents  int64
	quantity    int32
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCategory(eventID uuid.UUID, name, description string, priceCents int64, quantity int32) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	return &Category{
		id:          uuid.New(),
		eventID:     eventID,
		name:        name,
		description: description,
		priceCents:  priceCents,
		quantity:    quantity,
	}, nil
}

func ReconstructCategory(
	id, eventID uuid.UUID,
	name, description string,
	priceCents int64,
	quantity int32,
	createdAt, updatedAt time.Time,
) *Category {
	return &Category{
		id:          id,
		eventID:     eventID,
		name:        name,
		description: description,
		priceCents:  priceCents,
		quantity:    quantity,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// CanFulfill reports whether the remaining stock covers the requested amount.
func (c *Category) CanFulfill(requested int32) bool {
	return requested > 0 && requested <= c.quantity
}

func (c *Category) ID() uuid.UUID        { return c.id }
func (c *Category) EventID() uuid.UUID   { return c.eventID }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() string  { return c.description }
func (c *Category) PriceCents() int64    { return c.priceCents }
func (c *Category) Quantity() int32      { return c.quantity }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }
