//go:build unit

package queries_test

import (
	"context"
	"testing"

	"ticketbooth/internal/domain/user"
	"ticketbooth/internal/infra"
	"ticketbooth/internal/usecase/queries"
	"ticketbooth/tests/common/builder"
	queriesmock "ticketbooth/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderQueriesTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	readStore *queriesmock.MockOrderReadStore
	queries   queries.OrderQueries
}

func (s *OrderQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.readStore = queriesmock.NewMockOrderReadStore(s.ctrl)
	s.queries = queries.NewOrderQueries(s.readStore)
}

func (s *OrderQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestOrderQueriesSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}

func (s *OrderQueriesTestSuite) TestGetByID() {
	ctx := context.Background()
	view := builder.NewCheckoutBuilder().BuildOrderView()

	s.Run("owner can read their order", func() {
		s.readStore.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		got, err := s.queries.GetByID(ctx, view.ID, view.UserID, user.RoleCustomer.String())
		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("admin can read any order", func() {
		s.readStore.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		got, err := s.queries.GetByID(ctx, view.ID, uuid.New(), user.RoleAdmin.String())
		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("another customer gets not-found, not forbidden", func() {
		s.readStore.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		got, err := s.queries.GetByID(ctx, view.ID, uuid.New(), user.RoleCustomer.String())
		s.Require().ErrorIs(err, queries.ErrOrderNotFound)
		s.Nil(got)
	})

	s.Run("missing order", func() {
		missingID := uuid.New()
		s.readStore.EXPECT().FindByID(ctx, missingID).
			Return(nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound))

		got, err := s.queries.GetByID(ctx, missingID, view.UserID, user.RoleCustomer.String())
		s.Require().ErrorIs(err, queries.ErrOrderNotFound)
		s.Nil(got)
	})

	s.Run("unknown role is treated as not-found", func() {
		s.readStore.EXPECT().FindByID(ctx, view.ID).Return(view, nil)

		_, err := s.queries.GetByID(ctx, view.ID, view.UserID, "superuser")
		s.Require().ErrorIs(err, queries.ErrOrderNotFound)
	})
}

func (s *OrderQueriesTestSuite) TestListForUserPagination() {
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name           string
		limit, offset  int
		expectedLimit  int32
		expectedOffset int32
	}{
		{name: "zero limit is clamped to the minimum", limit: 0, offset: 0, expectedLimit: 1, expectedOffset: 0},
		{name: "negative limit is clamped to the minimum", limit: -5, offset: 3, expectedLimit: 1, expectedOffset: 3},
		{name: "limit above maximum is clamped", limit: 500, offset: 0, expectedLimit: 100, expectedOffset: 0},
		{name: "maximum limit passes through", limit: 100, offset: 10, expectedLimit: 100, expectedOffset: 10},
		{name: "negative offset is normalized to zero", limit: 10, offset: -1, expectedLimit: 10, expectedOffset: 0},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.readStore.EXPECT().ListByUser(ctx, userID, tc.expectedLimit, tc.expectedOffset).
				Return(nil, int64(0), nil)

			page, err := s.queries.ListForUser(ctx, userID, tc.limit, tc.offset)
			s.Require().NoError(err)
			s.Equal(tc.expectedLimit, page.Limit)
			s.Equal(tc.expectedOffset, page.Offset)
		})
	}
}

func (s *OrderQueriesTestSuite) TestListForUserEmptyPage() {
	ctx := context.Background()
	userID := uuid.New()

	s.readStore.EXPECT().ListByUser(ctx, userID, int32(20), int32(0)).
		Return(nil, int64(0), nil)

	page, err := s.queries.ListForUser(ctx, userID, 20, 0)
	s.Require().NoError(err)
	s.NotNil(page.Orders)
	s.Empty(page.Orders)
	s.Equal(int64(0), page.Total)
}

func (s *OrderQueriesTestSuite) TestListForUserReturnsItems() {
	ctx := context.Background()
	bld := builder.NewCheckoutBuilder()
	items := []queries.OrderListItem{bld.BuildListItem(), bld.BuildListItem()}

	s.readStore.EXPECT().ListByUser(ctx, bld.UserID, int32(20), int32(0)).
		Return(items, int64(7), nil)

	page, err := s.queries.ListForUser(ctx, bld.UserID, 0, 0)
	s.Require().NoError(err)
	s.Equal(int64(7), page.Total)
	s.Len(page.Orders, 2)
}
