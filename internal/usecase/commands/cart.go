package commands

import (
	"context"

	"ticketbooth/internal/domain/cart"
	reqdto "ticketbooth/internal/handler/dto/request"
	"ticketbooth/internal/infra"
	"ticketbooth/internal/pkg/errs"
	"ticketbooth/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidCartQuantity = errs.New("invalid cart quantity")

type CartCommands interface {
	AddItem(ctx context.Context, req reqdto.AddCartItemRequest, userID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartCommandsImpl struct {
	uow   shared.UnitOfWork
	carts shared.CartStore
}

func NewCartCommands(uow shared.UnitOfWork, carts shared.CartStore) CartCommands {
	return &cartCommandsImpl{uow: uow, carts: carts}
}

// AddItem stages a ticket category in the user's cart. The stock check here
// counts what the cart already holds, so a user cannot stage more than is on
// hand. It is advisory only; checkout re-validates under lock.
func (c *cartCommandsImpl) AddItem(ctx context.Context, req reqdto.AddCartItemRequest, userID uuid.UUID) error {
	if req.Quantity <= 0 {
		return ErrInvalidCartQuantity
	}

	snap, err := c.uow.CommandReads().TicketCategoryByID(ctx, req.TicketCategoryID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrTicketCategoryNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	staged, err := c.carts.Get(ctx, userID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if staged == nil {
		staged = cart.New()
	}

	if staged.QuantityOf(req.TicketCategoryID)+req.Quantity > snap.Quantity {
		return errs.Mark(
			errs.Newf("ticket category %q has %d left", snap.Name, snap.Quantity),
			ErrInsufficientStock)
	}

	if err := staged.Add(req.TicketCategoryID, req.Quantity); err != nil {
		return errs.Mark(err, ErrInvalidCartQuantity)
	}

	return c.carts.Put(ctx, userID, staged)
}

func (c *cartCommandsImpl) Clear(ctx context.Context, userID uuid.UUID) error {
	return c.carts.Delete(ctx, userID)
}
