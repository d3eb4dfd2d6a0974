package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"ticketbooth/internal/domain/cart"
	"ticketbooth/internal/domain/order"
	reqdto "ticketbooth/internal/handler/dto/request"
	"ticketbooth/internal/infra"
	"ticketbooth/internal/pkg/clock"
	"ticketbooth/internal/pkg/errs"
	"ticketbooth/internal/usecase/queries"
	"ticketbooth/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart               = errs.New("cart is empty")
	ErrTicketCategoryNotFound  = errs.New("ticket category not found")
	ErrInsufficientStock       = errs.New("insufficient stock")
	ErrPaymentDeclined         = errs.New("payment declined")
	ErrPaymentFailed           = errs.New("payment processing failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const orderCompletedTopic = "orders.completed"

type CheckoutResult struct {
	Order *queries.OrderView
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, req reqdto.CheckoutRequest, userID uuid.UUID) (*CheckoutResult, error)
}

type checkoutCommandsImpl struct {
	uow       shared.UnitOfWork
	carts     shared.CartStore
	payments  shared.PaymentAuthorizer
	orderRead queries.OrderReadStore
	clock     clock.Clock
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	carts shared.CartStore,
	payments shared.PaymentAuthorizer,
	orderRead queries.OrderReadStore,
	clock clock.Clock,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:       uow,
		carts:     carts,
		payments:  payments,
		orderRead: orderRead,
		clock:     clock,
	}
}

// Checkout converts the user's staged cart (or an explicit ticket list from
// the request) into a completed order. All stock validation, payment
// authorization and writes happen inside one transaction, so a failure at any
// line leaves inventory and orders untouched.
func (c *checkoutCommandsImpl) Checkout(ctx context.Context, req reqdto.CheckoutRequest, userID uuid.UUID) (*CheckoutResult, error) {
	lines := req.TicketLines()
	if lines == nil {
		staged, err := c.carts.Get(ctx, userID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if staged == nil || staged.IsEmpty() {
			return nil, ErrEmptyCart
		}
		lines = staged.Lines()
	}

	customer, err := req.CustomerToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	billing, err := req.BillingToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	payment, err := req.PaymentToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var orderID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		items, txErr := c.buildLineItems(ctx, tx, lines)
		if txErr != nil {
			return txErr
		}

		newOrder, txErr := order.NewOrder(userID, items, customer, billing, payment)
		if txErr != nil {
			return errs.Mark(txErr, ErrDomainValidation)
		}

		if txErr := c.authorizePayment(ctx, newOrder.TotalAmount(), req.CardDetails()); txErr != nil {
			return txErr
		}

		orderID, txErr = tx.Orders().Create(ctx, tx.DB(), newOrder)
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}

		for _, item := range items {
			if txErr := tx.Inventory().Decrement(ctx, tx.DB(), item.TicketCategoryID, item.Quantity); txErr != nil {
				if infra.IsKind(txErr, infra.KindInsufficientStock) {
					return errs.Mark(txErr, ErrInsufficientStock)
				}
				return errs.Mark(txErr, ErrDatabaseOperationFailed)
			}
		}

		return c.publishCompleted(ctx, tx, orderID, userID, newOrder.TotalAmount().Cents())
	})
	if err != nil {
		return nil, err
	}

	// Best effort: the order exists regardless of whether the cart cleanup
	// succeeds.
	if clearErr := c.carts.Delete(ctx, userID); clearErr != nil {
		slog.Warn("failed to clear cart after checkout", "user_id", userID, "error", clearErr.Error())
	}

	view, err := c.orderRead.FindByID(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CheckoutResult{Order: view}, nil
}

// buildLineItems locks every referenced category and snapshots current name
// and price into order line items. Any missing category or shortfall fails
// the whole checkout.
func (c *checkoutCommandsImpl) buildLineItems(ctx context.Context, tx shared.Tx, lines []cart.Line) ([]order.LineItem, error) {
	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.TicketCategoryID
	}

	locked, err := tx.Inventory().LockCategories(ctx, tx.DB(), ids)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	byID := make(map[uuid.UUID]shared.TicketCategorySnapshot, len(locked))
	for _, snap := range locked {
		byID[snap.ID] = snap
	}

	items := make([]order.LineItem, 0, len(lines))
	for _, line := range lines {
		snap, ok := byID[line.TicketCategoryID]
		if !ok {
			return nil, errs.Mark(errs.Newf("ticket category %s not found", line.TicketCategoryID), ErrTicketCategoryNotFound)
		}
		if snap.Quantity < line.Quantity {
			return nil, errs.Mark(
				errs.Newf("ticket category %q has %d left, %d requested", snap.Name, snap.Quantity, line.Quantity),
				ErrInsufficientStock)
		}

		price, perr := order.NewMoney(snap.PriceCents)
		if perr != nil {
			return nil, errs.Mark(perr, ErrDomainValidation)
		}
		item, perr := order.NewLineItem(snap.ID, snap.Name, price, line.Quantity)
		if perr != nil {
			return nil, errs.Mark(perr, ErrDomainValidation)
		}
		items = append(items, item)
	}

	return items, nil
}

func (c *checkoutCommandsImpl) authorizePayment(ctx context.Context, total order.Money, card shared.CardDetails) error {
	result, err := c.payments.Authorize(ctx, shared.PaymentRequest{
		AmountCents: total.Cents(),
		Card:        card,
	})
	if err != nil {
		return errs.Mark(err, ErrPaymentFailed)
	}

	switch result.Status {
	case shared.PaymentApproved:
		return nil
	case shared.PaymentDeclined:
		return errs.Mark(errs.Newf("payment declined: %s", result.Reason), ErrPaymentDeclined)
	default:
		return errs.Mark(errs.Newf("payment failed: %s", result.Reason), ErrPaymentFailed)
	}
}

func (c *checkoutCommandsImpl) publishCompleted(ctx context.Context, tx shared.Tx, orderID, userID uuid.UUID, totalCents int64) error {
	payload, err := json.Marshal(map[string]any{
		"order_id":           orderID,
		"user_id":            userID,
		"total_amount_cents": totalCents,
		"completed_at":       c.clock.Now(),
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Outbox().CreateEvent(ctx, tx.DB(), orderCompletedTopic, payload); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
