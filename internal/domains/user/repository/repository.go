package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	"cleanbook/internal/domains/user/model"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/logger"
	gRepo "cleanbook/shared/repository"
	"cleanbook/shared/timezone"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	AddPoints(ctx context.Context, id string, points int64) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// AddPoints credits points atomically so concurrent referrals do not overwrite each other.
func (r *repositoryImpl) AddPoints(ctx context.Context, id string, points int64) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.AddPoints")
	defer scope.End()

	query := fmt.Sprintf("UPDATE %s SET %s = %s + $1, %s = $2 WHERE %s = $3",
		model.TableName, model.FieldPoints, model.FieldPoints, constant.FieldModifiedAt, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := r.db.Write.ExecContext(ctx, query, points, timezone.Now(), id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to add points (%s): %w", model.EntityName, err)
	}

	return nil
}
