package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	bookingModel "cleanbook/internal/domains/booking/model"
	"cleanbook/internal/domains/review/model"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/logger"
	gRepo "cleanbook/shared/repository"
	"cleanbook/shared/timezone"
)

type Review interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Review, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Review, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	// Create stores the review and links it on its booking in one transaction.
	Create(ctx context.Context, review model.Review) error
	// Remove deletes the review with its helpful votes and unlinks its booking.
	Remove(ctx context.Context, review model.Review) error
	// ToggleHelpful flips the user's vote and returns the resulting vote count.
	ToggleHelpful(ctx context.Context, reviewID, userID string) (int, error)
	Stats(ctx context.Context, serviceID string) (model.Stats, error)
	RefreshCleanerRating(ctx context.Context, cleanerID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Create(ctx context.Context, review model.Review) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.Create")
	defer scope.End()

	query := fmt.Sprintf("UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3",
		bookingModel.TableName, bookingModel.FieldReviewID, constant.FieldModifiedAt, bookingModel.FieldID)

	return r.WithTransaction(ctx, func(tx *sqlx.Tx) error { //nolint:wrapcheck
		if err := r.InsertTx(ctx, tx, review); err != nil {
			return err //nolint:wrapcheck
		}

		if _, err := tx.ExecContext(ctx, query, review.ID, timezone.Now(), review.BookingID); err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to link review to booking: %w", err)
		}

		return nil
	})
}

func (r *repositoryImpl) Remove(ctx context.Context, review model.Review) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.Remove")
	defer scope.End()

	queries := []string{
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", model.VoteTableName, model.FieldVoteReviewID),
		fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s = $1", bookingModel.TableName, bookingModel.FieldReviewID, bookingModel.FieldReviewID),
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", model.TableName, model.FieldID),
	}

	return r.WithTransaction(ctx, func(tx *sqlx.Tx) error { //nolint:wrapcheck
		for _, query := range queries {
			scope.SetAttribute(constant.OtelQueryAttributeKey, query)

			if _, err := tx.ExecContext(ctx, query, review.ID); err != nil {
				logger.ErrorWithStack(err)
				scope.TraceError(err)

				return fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
			}
		}

		return nil
	})
}

func (r *repositoryImpl) ToggleHelpful(ctx context.Context, reviewID, userID string) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.ToggleHelpful")
	defer scope.End()

	var count int

	remove := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
		model.VoteTableName, model.FieldVoteReviewID, model.FieldVoteUserID)
	add := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING",
		model.VoteTableName, model.FieldVoteReviewID, model.FieldVoteUserID, constant.FieldCreatedAt)
	recount := fmt.Sprintf("UPDATE %s SET %s = (SELECT COUNT(*) FROM %s WHERE %s = $1) WHERE %s = $1 RETURNING %s",
		model.TableName, model.FieldHelpfulCount, model.VoteTableName, model.FieldVoteReviewID, model.FieldID, model.FieldHelpfulCount)

	err := r.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, remove, reviewID, userID)
		if err != nil {
			return fmt.Errorf("failed to remove helpful vote: %w", err)
		}

		removed, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read removed helpful votes: %w", err)
		}

		if removed == 0 {
			if _, err = tx.ExecContext(ctx, add, reviewID, userID, timezone.Now()); err != nil {
				return fmt.Errorf("failed to add helpful vote: %w", err)
			}
		}

		if err = tx.GetContext(ctx, &count, recount, reviewID); err != nil {
			return fmt.Errorf("failed to recount helpful votes: %w", err)
		}

		return nil
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, err //nolint:wrapcheck
	}

	return count, nil
}

func (r *repositoryImpl) Stats(ctx context.Context, serviceID string) (model.Stats, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.Stats")
	defer scope.End()

	aggregate := fmt.Sprintf(`SELECT COUNT(*) AS total,
		COALESCE(AVG(%[1]s), 0) AS average,
		COALESCE(AVG(NULLIF(%[2]s, 0)), 0) AS cleanliness,
		COALESCE(AVG(NULLIF(%[3]s, 0)), 0) AS punctuality,
		COALESCE(AVG(NULLIF(%[4]s, 0)), 0) AS professionalism
		FROM %[5]s WHERE %[6]s = $1 AND %[7]s = FALSE`,
		model.FieldRating, model.FieldCleanliness, model.FieldPunctuality, model.FieldProfessionalism,
		model.TableName, model.FieldServiceID, model.FieldIsHidden)
	distribution := fmt.Sprintf("SELECT %[1]s AS rating, COUNT(*) AS count FROM %[2]s WHERE %[3]s = $1 AND %[4]s = FALSE GROUP BY %[1]s",
		model.FieldRating, model.TableName, model.FieldServiceID, model.FieldIsHidden)

	scope.SetAttribute(constant.OtelQueryAttributeKey, aggregate)

	var row model.RatingRow
	if err := r.db.Read.GetContext(ctx, &row, aggregate, serviceID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Stats{}, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	var stars []model.StarCount
	if err := r.db.Read.SelectContext(ctx, &stars, distribution, serviceID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Stats{}, fmt.Errorf("failed to get rating distribution: %w", err)
	}

	return model.NewStats(row, stars), nil
}

// RefreshCleanerRating recomputes the cleaner's average rating and review count from visible reviews.
func (r *repositoryImpl) RefreshCleanerRating(ctx context.Context, cleanerID string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.RefreshCleanerRating")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %[1]s SET
		%[2]s = COALESCE((SELECT ROUND(AVG(%[4]s)::numeric, 1) FROM %[5]s WHERE %[6]s = $1 AND %[7]s = FALSE), 0),
		%[3]s = (SELECT COUNT(*) FROM %[5]s WHERE %[6]s = $1 AND %[7]s = FALSE)
		WHERE %[8]s = $1`,
		userModel.TableName, userModel.FieldAverageRating, userModel.FieldTotalReviews,
		model.FieldRating, model.TableName, model.FieldCleanerID, model.FieldIsHidden, userModel.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := r.db.Write.ExecContext(ctx, query, cleanerID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to refresh cleaner rating: %w", err)
	}

	return nil
}

// VisibleFilter matches reviews shown to the public, optionally narrowed to a service and a minimum rating.
func VisibleFilter(serviceID string, minRating int) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldIsHidden, Operator: gDto.FilterOperatorEq, Value: false, Table: model.TableName},
		},
	}

	if serviceID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldServiceID,
			Operator: gDto.FilterOperatorEq,
			Value:    serviceID,
			Table:    model.TableName,
		})
	}

	if minRating > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldRating,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    minRating,
			Table:    model.TableName,
		})
	}

	return filter
}
