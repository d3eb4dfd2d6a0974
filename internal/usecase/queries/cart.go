package queries

import (
	"context"

	"ticketbooth/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartQueries interface {
	GetContents(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

type cartQueriesImpl struct {
	carts   shared.CartStore
	tickets TicketReadStore
}

func NewCartQueries(carts shared.CartStore, tickets TicketReadStore) CartQueries {
	return &cartQueriesImpl{carts: carts, tickets: tickets}
}

// GetContents joins the staged cart against current catalog data. Prices
// shown here are advisory; the checkout transaction re-reads them under lock.
func (q *cartQueriesImpl) GetContents(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	c, err := q.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return &CartView{Lines: []CartLineView{}}, nil
	}

	lines := c.Lines()
	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.TicketCategoryID
	}

	categories, err := q.tickets.FindCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]TicketCategoryView, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	view := &CartView{Lines: make([]CartLineView, 0, len(lines))}
	for _, line := range lines {
		cat, ok := byID[line.TicketCategoryID]
		if !ok {
			// Category removed from the catalog since it was staged
			continue
		}
		subtotal := cat.PriceCents * int64(line.Quantity)
		view.Lines = append(view.Lines, CartLineView{
			TicketCategoryID: line.TicketCategoryID,
			Name:             cat.Name,
			UnitPriceCents:   cat.PriceCents,
			Quantity:         line.Quantity,
			SubtotalCents:    subtotal,
		})
		view.TotalItems += line.Quantity
		view.SubtotalCents += subtotal
	}

	return view, nil
}
