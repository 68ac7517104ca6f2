package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	"cleanbook/internal/domains/booking/model"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	gRepo "cleanbook/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateAffected(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	HasOverlap(ctx context.Context, interval model.Interval, excludeID string) (bool, error)
	Intervals(ctx context.Context, from, to time.Time) ([]model.Interval, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// OverlapFilter matches non-cancelled bookings whose [start_at, end_at) intersects interval.
func OverlapFilter(interval model.Interval, excludeID string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "interval_end",
				Field:    model.FieldStartAt,
				Operator: gDto.FilterOperatorLess,
				Value:    interval.End,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "interval_start",
				Field:    model.FieldEndAt,
				Operator: gDto.FilterOperatorGreater,
				Value:    interval.Start,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    model.StatusCancelled,
				Table:    model.TableName,
			},
		},
	}

	if excludeID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    model.TableName,
		})
	}

	return filter
}

func (r *repositoryImpl) HasOverlap(ctx context.Context, interval model.Interval, excludeID string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasOverlap")
	defer scope.End()

	return r.Exist(ctx, OverlapFilter(interval, excludeID)) //nolint:wrapcheck
}

// Intervals returns the booked intervals intersecting [from, to).
func (r *repositoryImpl) Intervals(ctx context.Context, from, to time.Time) ([]model.Interval, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Intervals")
	defer scope.End()

	bookings, err := r.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartAt, SortDir: gDto.SortDirAsc},
		OverlapFilter(model.Interval{Start: from, End: to}, constant.Empty), model.FieldStartAt, model.FieldEndAt)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get booked intervals: %w", err)
	}

	intervals := make([]model.Interval, len(bookings))
	for i, booking := range bookings {
		intervals[i] = model.Interval{Start: booking.StartAt, End: booking.EndAt}
	}

	return intervals, nil
}
