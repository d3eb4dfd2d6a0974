//go:build unit

package commands_test

import (
	"context"
	"testing"

	"ticketbooth/internal/infra/cartstore"
	"ticketbooth/internal/usecase/commands"
	"ticketbooth/internal/usecase/shared"
	"ticketbooth/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CartCommandsTestSuite struct {
	suite.Suite
	ledger   *fakeLedger
	carts    shared.CartStore
	commands commands.CartCommands
	bld      *builder.CheckoutBuilder
}

func (s *CartCommandsTestSuite) SetupTest() {
	s.bld = builder.NewCheckoutBuilder()
	s.ledger = &fakeLedger{categories: map[uuid.UUID]shared.TicketCategorySnapshot{
		s.bld.CategoryID: s.bld.BuildSnapshot(),
	}}
	s.carts = cartstore.NewMemoryStore()

	uow := &fakeUoW{tx: &fakeTx{ledger: s.ledger, orders: &fakeOrderRepo{}, outbox: &fakeOutboxRepo{}}}
	s.commands = commands.NewCartCommands(uow, s.carts)
}

func TestCartCommandsSuite(t *testing.T) {
	suite.Run(t, new(CartCommandsTestSuite))
}

func (s *CartCommandsTestSuite) TestAddItem() {
	ctx := context.Background()

	s.Run("success: stages the requested quantity", func() {
		err := s.commands.AddItem(ctx, s.bld.BuildAddItemRequestDTO(), s.bld.UserID)
		s.Require().NoError(err)

		c, err := s.carts.Get(ctx, s.bld.UserID)
		s.Require().NoError(err)
		s.Require().NotNil(c)
		s.Equal(s.bld.Quantity, c.QuantityOf(s.bld.CategoryID))
	})

	s.Run("success: repeat adds merge into one line", func() {
		err := s.commands.AddItem(ctx, s.bld.BuildAddItemRequestDTO(), s.bld.UserID)
		s.Require().NoError(err)

		c, err := s.carts.Get(ctx, s.bld.UserID)
		s.Require().NoError(err)
		s.Equal(s.bld.Quantity*2, c.QuantityOf(s.bld.CategoryID))
		s.Len(c.Lines(), 1)
	})

	s.Run("error: staging beyond available stock is rejected", func() {
		// 4 already staged of 10; 7 more would exceed the ledger.
		req := s.bld.BuildAddItemRequestDTO()
		req.Quantity = 7

		err := s.commands.AddItem(ctx, req, s.bld.UserID)
		s.Require().ErrorIs(err, commands.ErrInsufficientStock)

		c, getErr := s.carts.Get(ctx, s.bld.UserID)
		s.Require().NoError(getErr)
		s.Equal(s.bld.Quantity*2, c.QuantityOf(s.bld.CategoryID))
	})
}

func (s *CartCommandsTestSuite) TestAddItemInvalidQuantity() {
	ctx := context.Background()

	for _, qty := range []int32{0, -3} {
		req := s.bld.BuildAddItemRequestDTO()
		req.Quantity = qty

		err := s.commands.AddItem(ctx, req, s.bld.UserID)
		s.Require().ErrorIs(err, commands.ErrInvalidCartQuantity)
	}

	c, err := s.carts.Get(ctx, s.bld.UserID)
	s.Require().NoError(err)
	s.Nil(c)
}

func (s *CartCommandsTestSuite) TestAddItemUnknownCategory() {
	req := s.bld.BuildAddItemRequestDTO()
	req.TicketCategoryID = uuid.New()

	err := s.commands.AddItem(context.Background(), req, s.bld.UserID)
	s.Require().ErrorIs(err, commands.ErrTicketCategoryNotFound)
}

func (s *CartCommandsTestSuite) TestClear() {
	ctx := context.Background()

	s.Require().NoError(s.commands.AddItem(ctx, s.bld.BuildAddItemRequestDTO(), s.bld.UserID))
	s.Require().NoError(s.commands.Clear(ctx, s.bld.UserID))

	c, err := s.carts.Get(ctx, s.bld.UserID)
	s.Require().NoError(err)
	s.Nil(c)

	s.Run("clearing an absent cart is a no-op", func() {
		s.Require().NoError(s.commands.Clear(ctx, uuid.New()))
	})
}
