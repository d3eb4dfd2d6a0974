//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticketbooth/internal/domain/cart"
	"ticketbooth/internal/domain/order"
	"ticketbooth/internal/domain/ticket"
	reqdto "ticketbooth/internal/handler/dto/request"
	"ticketbooth/internal/infra"
	"ticketbooth/internal/infra/cartstore"
	"ticketbooth/internal/infra/db"
	"ticketbooth/internal/pkg/clock"
	"ticketbooth/internal/usecase/commands"
	"ticketbooth/internal/usecase/shared"
	"ticketbooth/tests/common/builder"
	queriesmock "ticketbooth/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeLedger backs the fake unit of work with an in-memory quantity table so
// tests can observe decrements and trigger shortfalls.
type fakeLedger struct {
	categories map[uuid.UUID]shared.TicketCategorySnapshot
}

func (l *fakeLedger) LockCategories(_ context.Context, _ db.DBTX, ids []uuid.UUID) ([]shared.TicketCategorySnapshot, error) {
	var out []shared.TicketCategorySnapshot
	for _, id := range ids {
		if snap, ok := l.categories[id]; ok {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (l *fakeLedger) Decrement(_ context.Context, _ db.DBTX, id uuid.UUID, amount int32) error {
	snap, ok := l.categories[id]
	if !ok || snap.Quantity < amount {
		return infra.WrapRepoErr("insufficient stock for ticket category "+id.String(), nil, infra.KindInsufficientStock)
	}
	snap.Quantity -= amount
	l.categories[id] = snap
	return nil
}

func (l *fakeLedger) CreateCategory(_ context.Context, _ db.DBTX, cat *ticket.Category) (uuid.UUID, error) {
	snap := shared.TicketCategorySnapshot{
		ID:         cat.ID(),
		EventID:    cat.EventID(),
		Name:       cat.Name(),
		PriceCents: cat.PriceCents(),
		Quantity:   cat.Quantity(),
	}
	l.categories[snap.ID] = snap
	return snap.ID, nil
}

func (l *fakeLedger) TicketCategoryByID(_ context.Context, id uuid.UUID) (*shared.TicketCategorySnapshot, error) {
	snap, ok := l.categories[id]
	if !ok {
		return nil, infra.WrapRepoErr("ticket category not found", nil, infra.KindNotFound)
	}
	return &snap, nil
}

func (l *fakeLedger) TicketCategoriesByIDs(_ context.Context, ids []uuid.UUID) ([]shared.TicketCategorySnapshot, error) {
	var out []shared.TicketCategorySnapshot
	for _, id := range ids {
		if snap, ok := l.categories[id]; ok {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (l *fakeLedger) snapshot() map[uuid.UUID]shared.TicketCategorySnapshot {
	copied := make(map[uuid.UUID]shared.TicketCategorySnapshot, len(l.categories))
	for k, v := range l.categories {
		copied[k] = v
	}
	return copied
}

type fakeOrderRepo struct {
	created []*order.Order
	err     error
}

func (r *fakeOrderRepo) Create(_ context.Context, _ db.DBTX, o *order.Order) (uuid.UUID, error) {
	if r.err != nil {
		return uuid.Nil, r.err
	}
	r.created = append(r.created, o)
	return o.ID(), nil
}

type fakeOutboxRepo struct {
	topics   []string
	payloads [][]byte
}

func (r *fakeOutboxRepo) CreateEvent(_ context.Context, _ db.DBTX, topic string, payload []byte) error {
	r.topics = append(r.topics, topic)
	r.payloads = append(r.payloads, payload)
	return nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) UpdateLastLogin(context.Context, db.DBTX, uuid.UUID) error { return nil }
func (fakeUserRepo) Create(context.Context, db.DBTX, string, string, string) (uuid.UUID, error) {
	return uuid.Nil, nil
}

type fakeTx struct {
	ledger *fakeLedger
	orders *fakeOrderRepo
	outbox *fakeOutboxRepo
}

func (t *fakeTx) Orders() shared.OrderRepository        { return t.orders }
func (t *fakeTx) Inventory() shared.InventoryRepository { return t.ledger }
func (t *fakeTx) Outbox() shared.OutboxRepository       { return t.outbox }
func (t *fakeTx) Users() shared.UserRepository          { return fakeUserRepo{} }
func (t *fakeTx) Reads() shared.CommandReads            { return t.ledger }
func (t *fakeTx) DB() db.DBTX                           { return nil }

// fakeUoW runs the transaction function against the fake ledger and restores
// the pre-transaction state when the function fails, mirroring a rollback.
type fakeUoW struct {
	tx *fakeTx
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	before := u.tx.ledger.snapshot()
	ordersBefore := len(u.tx.orders.created)
	outboxBefore := len(u.tx.outbox.topics)

	if err := fn(ctx, u.tx); err != nil {
		u.tx.ledger.categories = before
		u.tx.orders.created = u.tx.orders.created[:ordersBefore]
		u.tx.outbox.topics = u.tx.outbox.topics[:outboxBefore]
		u.tx.outbox.payloads = u.tx.outbox.payloads[:outboxBefore]
		return err
	}
	return nil
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads { return u.tx.ledger }

type fakePayments struct {
	result   shared.PaymentResult
	err      error
	requests []shared.PaymentRequest
}

func (p *fakePayments) Authorize(_ context.Context, req shared.PaymentRequest) (shared.PaymentResult, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return shared.PaymentResult{}, p.err
	}
	return p.result, nil
}

type CheckoutCommandsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	ledger    *fakeLedger
	orders    *fakeOrderRepo
	outbox    *fakeOutboxRepo
	carts     shared.CartStore
	payments  *fakePayments
	orderRead *queriesmock.MockOrderReadStore
	commands  commands.CheckoutCommands
	bld       *builder.CheckoutBuilder
}

func (s *CheckoutCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.bld = builder.NewCheckoutBuilder()
	s.ledger = &fakeLedger{categories: map[uuid.UUID]shared.TicketCategorySnapshot{
		s.bld.CategoryID: s.bld.BuildSnapshot(),
	}}
	s.orders = &fakeOrderRepo{}
	s.outbox = &fakeOutboxRepo{}
	s.carts = cartstore.NewMemoryStore()
	s.payments = &fakePayments{result: shared.PaymentResult{Status: shared.PaymentApproved, Reference: "ref-1"}}
	s.orderRead = queriesmock.NewMockOrderReadStore(s.ctrl)

	uow := &fakeUoW{tx: &fakeTx{ledger: s.ledger, orders: s.orders, outbox: s.outbox}}
	s.commands = commands.NewCheckoutCommands(uow, s.carts, s.payments, s.orderRead, clock.NewMockClock(time.Now()))
}

func (s *CheckoutCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCheckoutCommandsSuite(t *testing.T) {
	suite.Run(t, new(CheckoutCommandsTestSuite))
}

func (s *CheckoutCommandsTestSuite) stageCart() {
	s.Require().NoError(s.carts.Put(context.Background(), s.bld.UserID, s.bld.BuildCart()))
}

func (s *CheckoutCommandsTestSuite) TestCheckoutSuccess() {
	ctx := context.Background()
	s.stageCart()

	returned := s.bld.BuildOrderView()
	s.orderRead.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(returned, nil).Times(1)

	result, err := s.commands.Checkout(ctx, s.bld.BuildCheckoutRequestDTO(), s.bld.UserID)
	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.Equal(returned, result.Order)

	s.Run("order is persisted with derived total", func() {
		s.Require().Len(s.orders.created, 1)
		created := s.orders.created[0]
		s.Equal(s.bld.UserID, created.UserID())
		s.Equal(s.bld.PriceCents*int64(s.bld.Quantity), created.TotalAmount().Cents())
	})

	s.Run("stock is decremented", func() {
		s.Equal(s.bld.Stock-s.bld.Quantity, s.ledger.categories[s.bld.CategoryID].Quantity)
	})

	s.Run("payment was charged the order total", func() {
		s.Require().Len(s.payments.requests, 1)
		s.Equal(s.bld.PriceCents*int64(s.bld.Quantity), s.payments.requests[0].AmountCents)
	})

	s.Run("completion event is staged in the outbox", func() {
		s.Require().Len(s.outbox.topics, 1)
		s.Equal("orders.completed", s.outbox.topics[0])
	})

	s.Run("cart is cleared", func() {
		c, err := s.carts.Get(ctx, s.bld.UserID)
		s.Require().NoError(err)
		s.Nil(c)
	})
}

func (s *CheckoutCommandsTestSuite) TestCheckoutExplicitTicketList() {
	ctx := context.Background()
	s.stageCart()

	returned := s.bld.BuildOrderView()
	s.orderRead.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(returned, nil).Times(1)

	// An explicit ticket list takes precedence over whatever is staged.
	req := s.bld.BuildCheckoutRequestDTO()
	req.Tickets = []reqdto.CheckoutTicketRequest{
		{TicketCategoryID: s.bld.CategoryID, Quantity: 1},
	}

	result, err := s.commands.Checkout(ctx, req, s.bld.UserID)
	s.Require().NoError(err)
	s.Require().NotNil(result)

	s.Run("only the requested quantity is decremented", func() {
		s.Equal(s.bld.Stock-1, s.ledger.categories[s.bld.CategoryID].Quantity)
	})

	s.Run("order total reflects the explicit list", func() {
		s.Require().Len(s.orders.created, 1)
		s.Equal(s.bld.PriceCents, s.orders.created[0].TotalAmount().Cents())
	})

	s.Run("staged cart is still cleared", func() {
		c, err := s.carts.Get(ctx, s.bld.UserID)
		s.Require().NoError(err)
		s.Nil(c)
	})
}

func (s *CheckoutCommandsTestSuite) TestCheckoutEmptyCart() {
	result, err := s.commands.Checkout(context.Background(), s.bld.BuildCheckoutRequestDTO(), s.bld.UserID)
	s.Require().ErrorIs(err, commands.ErrEmptyCart)
	s.Nil(result)
	s.Empty(s.orders.created)
	s.Empty(s.payments.requests)
}

func (s *CheckoutCommandsTestSuite) TestCheckoutVanishedCategory() {
	ctx := context.Background()
	c := cart.New()
	s.Require().NoError(c.Add(uuid.New(), 1))
	s.Require().NoError(s.carts.Put(ctx, s.bld.UserID, c))

	_, err := s.commands.Checkout(ctx, s.bld.BuildCheckoutRequestDTO(), s.bld.UserID)
	s.Require().ErrorIs(err, commands.ErrTicketCategoryNotFound)
	s.Empty(s.orders.created)
	s.Empty(s.payments.requests)
}

func (s *CheckoutCommandsTestSuite) TestCheckoutInsufficientStock() {
	ctx := context.Background()
	s.bld.WithQuantity(s.bld.Stock + 1)
	s.stageCart()

	_, err := s.commands.Checkout(ctx, s.bld.BuildCheckoutRequestDTO(), s.bld.UserID)
	s.Require().ErrorIs(err, commands.ErrInsufficientStock)

	s.Run("nothing is persisted and payment is never attempted", func() {
		s.Empty(s.orders.created)
		s.Empty(s.payments.requests)
		s.Equal(s.bld.Stock, s.ledger.categories[s.bld.CategoryID].Quantity)
	})

	s.Run("cart survives the failed checkout", func() {
		c, err := s.carts.Get(ctx, s.bld.UserID)
		s.Require().NoError(err)
		s.Require().NotNil(c)
		s.False(c.IsEmpty())
	})
}

func (s *CheckoutCommandsTestSuite) TestCheckoutPartialShortfallRollsBack() {
	ctx := context.Background()

	scarce := builder.NewCheckoutBuilder().WithStock(1).WithQuantity(2)
	s.ledger.categories[scarce.CategoryID] = scarce.BuildSnapshot()

	c := cart.New()
	s.Require().NoError(c.Add(s.bld.CategoryID, s.bld.Quantity))
	s.Require().NoError(c.Add(scarce.CategoryID, scarce.Quantity))
	s.Require().NoError(s.carts.Put(ctx, s.bld.UserID, c))

	_, err := s.commands.Checkout(ctx, s.bld.BuildCheckoutRequestDTO(), s.bld.UserID)
	s.Require().ErrorIs(err, commands.ErrInsufficientStock)

	// All-or-nothing: the fulfillable line must not have consumed stock.
	s.Equal(s.bld.Stock, s.ledger.categories[s.bld.CategoryID].Quantity)
	s.Equal(scarce.Stock, s.ledger.categories[scarce.CategoryID].Quantity)
	s.Empty(s.orders.created)
}

func (s *CheckoutCommandsTestSuite) TestCheckoutPaymentDeclined() {
	ctx := context.Background()
	s.stageCart()
	s.payments.result = shared.PaymentResult{Status: shared.PaymentDeclined, Reason: "card declined"}

	_, err := s.commands.Checkout(ctx, s.bld.BuildCheckoutRequestDTO(), s.bld.UserID)
	s.Require().ErrorIs(err, commands.ErrPaymentDeclined)

	s.Run("decline leaves inventory, orders and cart untouched", func() {
		s.Empty(s.orders.created)
		s.Empty(s.outbox.topics)
		s.Equal(s.bld.Stock, s.ledger.categories[s.bld.CategoryID].Quantity)

		c, err := s.carts.Get(ctx, s.bld.UserID)
		s.Require().NoError(err)
		s.NotNil(c)
	})
}

func (s *CheckoutCommandsTestSuite) TestCheckoutPaymentGatewayError() {
	ctx := context.Background()
	s.stageCart()
	s.payments.err = errors.New("gateway timeout")

	_, err := s.commands.Checkout(ctx, s.bld.BuildCheckoutRequestDTO(), s.bld.UserID)
	s.Require().ErrorIs(err, commands.ErrPaymentFailed)
	s.Empty(s.orders.created)
}

func (s *CheckoutCommandsTestSuite) TestCheckoutInvalidCustomerInfo() {
	ctx := context.Background()
	s.stageCart()
	s.bld.WithFirstName("   ")

	_, err := s.commands.Checkout(ctx, s.bld.BuildCheckoutRequestDTO(), s.bld.UserID)
	s.Require().ErrorIs(err, commands.ErrDomainValidation)
	s.Empty(s.payments.requests)
}

func (s *CheckoutCommandsTestSuite) TestCheckoutPriceSnapshotUsesLedgerPrice() {
	ctx := context.Background()
	s.stageCart()

	// Ledger price differs from whatever the cart displayed earlier.
	snap := s.ledger.categories[s.bld.CategoryID]
	snap.PriceCents = 7500
	s.ledger.categories[s.bld.CategoryID] = snap

	s.orderRead.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(s.bld.BuildOrderView(), nil).Times(1)

	_, err := s.commands.Checkout(ctx, s.bld.BuildCheckoutRequestDTO(), s.bld.UserID)
	s.Require().NoError(err)

	s.Require().Len(s.orders.created, 1)
	items := s.orders.created[0].Items()
	s.Require().Len(items, 1)
	s.Equal(int64(7500), items[0].UnitPrice.Cents())
	s.Equal(int64(7500)*int64(s.bld.Quantity), s.orders.created[0].TotalAmount().Cents())
}
