package commands

import (
	"context"

	reqdto "ticketbooth/internal/handler/dto/request"
	"ticketbooth/internal/infra"
	"ticketbooth/internal/pkg/errs"
	"ticketbooth/internal/usecase/queries"
	"ticketbooth/internal/usecase/shared"
)

var ErrEventNotFound = errs.New("event not found")

type TicketCommands interface {
	CreateCategory(ctx context.Context, req reqdto.CreateTicketCategoryRequest) (*queries.TicketCategoryView, error)
}

type ticketCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.TicketReadStore
}

func NewTicketCommands(uow shared.UnitOfWork, readStore queries.TicketReadStore) TicketCommands {
	return &ticketCommandsImpl{uow: uow, readStore: readStore}
}

func (t *ticketCommandsImpl) CreateCategory(ctx context.Context, req reqdto.CreateTicketCategoryRequest) (*queries.TicketCategoryView, error) {
	category, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	id := category.ID()
	err = t.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		createdID, txErr := tx.Inventory().CreateCategory(ctx, tx.DB(), category)
		if txErr != nil {
			return txErr
		}
		id = createdID
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, ErrEventNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := t.readStore.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}
