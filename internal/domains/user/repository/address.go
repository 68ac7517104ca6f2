package repository

//go:generate go run go.uber.org/mock/mockgen -source=./address.go -destination=../mocks/address_mock.go -package=mocks

import (
	"context"

	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	"cleanbook/internal/domains/user/model"
	gDto "cleanbook/shared/dto"
	gRepo "cleanbook/shared/repository"
)

type Address interface {
	Insert(ctx context.Context, model model.Address) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Address, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Address, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type addressRepositoryImpl struct {
	gRepo.Repository[model.Address]
}

func NewAddress(db *postgres.Connection, otel otel.Otel) Address {
	return &addressRepositoryImpl{
		Repository: gRepo.NewRepository[model.Address](model.AddressEntityName, model.AddressTableName, model.FieldID, db, otel),
	}
}
