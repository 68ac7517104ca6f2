package repository

//go:generate go run go.uber.org/mock/mockgen -source=./favorite.go -destination=../mocks/favorite_mock.go -package=mocks

import (
	"context"

	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	"cleanbook/internal/domains/user/model"
	gDto "cleanbook/shared/dto"
	gRepo "cleanbook/shared/repository"
)

type Favorite interface {
	Insert(ctx context.Context, model model.FavoriteCleaner) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.FavoriteCleaner, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type favoriteRepositoryImpl struct {
	gRepo.Repository[model.FavoriteCleaner]
}

func NewFavorite(db *postgres.Connection, otel otel.Otel) Favorite {
	return &favoriteRepositoryImpl{
		Repository: gRepo.NewRepository[model.FavoriteCleaner](model.FavoriteEntityName, model.FavoriteTableName, model.FieldID, db, otel),
	}
}
