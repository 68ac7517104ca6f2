package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	"cleanbook/internal/domains/catalog/model"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/logger"
	gRepo "cleanbook/shared/repository"
)

type Catalog interface {
	Insert(ctx context.Context, model model.Service) error
	InsertBulk(ctx context.Context, models []model.Service) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	IncrementPopularity(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Service]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Catalog {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Service](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) IncrementPopularity(ctx context.Context, id string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".service.IncrementPopularity")
	defer scope.End()

	query := fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE %s = $1", model.TableName, model.FieldPopularity, model.FieldPopularity, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := r.db.Write.ExecContext(ctx, query, id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to increment popularity (%s): %w", model.EntityName, err)
	}

	return nil
}
