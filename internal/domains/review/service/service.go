package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cleanbook/config"
	"cleanbook/infras/otel"
	"cleanbook/infras/s3"
	bookingModel "cleanbook/internal/domains/booking/model"
	bookingRepo "cleanbook/internal/domains/booking/repository"
	"cleanbook/internal/domains/review/model"
	"cleanbook/internal/domains/review/model/dto"
	"cleanbook/internal/domains/review/repository"
	"cleanbook/permissions"
	"cleanbook/shared"
	"cleanbook/shared/cache"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
	gModel "cleanbook/shared/model"
	"cleanbook/shared/timezone"
)

const (
	cacheGetReview    = "review:get"
	cacheGetAllReview = "review:gets"
	cacheCountReview  = "review:count"
	cacheStatsReview  = "review:stats"

	msgReviewExists = "review already exists for this booking"
)

var ErrDeleteImagesFromS3 = errors.New("failed to delete images from S3")

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, minRating int) (dto.GetReviewsResponse, error)
	GetByService(ctx context.Context, serviceID string, req gDto.QueryParams) (dto.ServiceReviewsResponse, error)
	Get(ctx context.Context, id string) (dto.ReviewResponse, error)
	Update(ctx context.Context, req dto.UpdateReviewRequest, id string) (dto.ReviewResponse, error)
	Delete(ctx context.Context, id string) error
	ToggleHelpful(ctx context.Context, id string) (dto.HelpfulResponse, error)
	AddAdminResponse(ctx context.Context, req dto.AdminResponseRequest, id string) (dto.ReviewResponse, error)
	ToggleHide(ctx context.Context, id string) (dto.ReviewResponse, error)
}

type serviceImpl struct {
	repo        repository.Review
	bookingRepo bookingRepo.Booking
	permissions *permissions.PermissionData
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(
	repo repository.Review,
	bookingRepo bookingRepo.Booking,
	permissions *permissions.PermissionData,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Review {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		permissions: permissions,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, role := shared.UserFromContext(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for review")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	if !s.permissions.Allows(permissions.OpReviewCreate, role, booking.OwnedBy(userID)) {
		return res, failure.ResourceRestrictedError
	}

	if booking.Status != bookingModel.StatusCompleted {
		return res, failure.BadRequestFromString("only completed bookings can be reviewed")
	}

	if booking.ReviewID != nil {
		return res, failure.BadRequestFromString(msgReviewExists)
	}

	exist, err := s.repo.Exist(ctx, shared.FilterEq(model.TableName, model.FieldBookingID, booking.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check review existence")

		return res, fmt.Errorf("failed to check review existence: %w", err)
	}

	if exist {
		return res, failure.BadRequestFromString(msgReviewExists)
	}

	images, uploaded, err := s.storeImages(ctx, req.Images)
	if err != nil {
		return res, err
	}

	review := req.ToModel(userID, booking, images)

	if err = s.repo.Create(ctx, review); err != nil {
		s.discardImages(ctx, uploaded)

		if shared.IsUniqueViolation(err, model.ConstraintBooking) {
			return res, failure.BadRequestFromString(msgReviewExists)
		}

		log.Error().Err(err).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	s.refreshCleaner(ctx, review.CleanerID)
	s.invalidateLists(ctx, review.ServiceID)
	s.invalidateBooking(ctx, booking.ID)

	review.ServiceName = booking.ServiceName
	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadReviewImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucketName := s.cfg.External.S3.BucketName
	fileName := uuid.NewString() + path.Ext(req.Image.Filename)

	url, err := s.s3.UploadFile(ctx, bucketName, model.ImageDirectory, req.ImageFile, req.Image, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to S3")

		return res, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	res.FromModel(url, fileName)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, minRating int) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllReviews")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, req, repository.VisibleFilter(constant.Empty, minRating))
}

func (s *serviceImpl) GetByService(ctx context.Context, serviceID string, req gDto.QueryParams) (res dto.ServiceReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetServiceReviews")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.GetReviewsResponse, err = s.list(ctx, req, repository.VisibleFilter(serviceID, 0))
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheStatsReview, serviceID)

	if err = s.cache.Get(ctx, cacheKey, &res.Stats); err == nil {
		return res, nil
	}

	res.Stats, err = s.repo.Stats(ctx, serviceID)
	if err != nil {
		log.Error().Err(err).Str("serviceID", serviceID).Msg("failed to get review stats")

		return res, fmt.Errorf("failed to get review stats: %w", err)
	}

	stats := res.Stats

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, stats, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review stats to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReviewsResponse, err error) {
	if req.SortBy == constant.Empty {
		req.SortBy = constant.DefaultValueSortBy
		req.SortDir = constant.DefaultValueSortDir
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReview, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	reviews, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(reviews, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReview, req, filter)

	var total int
	if err := s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, role := shared.UserFromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetReview, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		review, err := s.find(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(review)

		cached := res

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save review to cache")
			}
		}()
	}

	if res.IsHidden && !s.permissions.Allows(permissions.OpReviewReadHidden, role, false) {
		return dto.ReviewResponse{}, failure.NotFound("review not found")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReviewRequest, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("no fields to update")
	}

	review, err := s.authorize(ctx, id, permissions.OpReviewUpdate)
	if err != nil {
		return res, err
	}

	days := s.cfg.Business.ReviewEditDays
	if days <= 0 {
		days = model.EditWindowDays
	}

	if timezone.Now().After(review.EditableUntil(days)) {
		return res, failure.BadRequestFromString(fmt.Sprintf("reviews can only be edited within %d days", days))
	}

	userID, _ := shared.UserFromContext(ctx)
	fields := shared.TransformFields(req, userID)

	var uploaded []string

	if req.Images != nil {
		var images []model.Image

		images, uploaded, err = s.storeImages(ctx, req.Images)
		if err != nil {
			return res, err
		}

		fields[model.FieldImages] = gModel.JSONList[model.Image](images)
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		s.discardImages(ctx, uploaded)

		log.Error().Err(err).Msg("failed to update review")

		return res, fmt.Errorf("failed to update review: %w", err)
	}

	if req.Rating != 0 && req.Rating != review.Rating {
		s.refreshCleaner(ctx, review.CleanerID)
	}

	s.invalidate(ctx, review)

	return s.reload(ctx, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	review, err := s.authorize(ctx, id, permissions.OpReviewDelete)
	if err != nil {
		return err
	}

	if err = s.repo.Remove(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.refreshCleaner(ctx, review.CleanerID)
	s.invalidate(ctx, review)
	s.invalidateBooking(ctx, review.BookingID)

	if len(review.Images) > 0 {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.deleteImages(c, review.ImageURLs()); err != nil {
				log.Error().Err(err).Str("reviewID", review.ID).Msg("failed to delete review images")
			}
		}()
	}

	return nil
}

func (s *serviceImpl) ToggleHelpful(ctx context.Context, id string) (res dto.HelpfulResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleHelpful")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	review, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if review.IsHidden {
		return res, failure.NotFound("review not found")
	}

	count, err := s.repo.ToggleHelpful(ctx, id, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to toggle helpful vote")

		return res, fmt.Errorf("failed to toggle helpful vote: %w", err)
	}

	s.invalidate(ctx, review)

	res.ReviewID = id
	res.HelpfulCount = count

	return res, nil
}

func (s *serviceImpl) AddAdminResponse(ctx context.Context, req dto.AdminResponseRequest, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddAdminResponse")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	review, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	userID, _ := shared.UserFromContext(ctx)

	fields := shared.TransformFields(struct{}{}, userID)
	fields[model.FieldResponse] = req.Content
	fields[model.FieldRespondedAt] = timezone.Now()
	fields[model.FieldRespondedBy] = userID

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to respond to review")

		return res, fmt.Errorf("failed to respond to review: %w", err)
	}

	s.invalidate(ctx, review)

	return s.reload(ctx, id)
}

func (s *serviceImpl) ToggleHide(ctx context.Context, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleHideReview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	review, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	userID, _ := shared.UserFromContext(ctx)

	fields := shared.TransformFields(struct{}{}, userID)
	fields[model.FieldIsHidden] = !review.IsHidden

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to toggle review visibility")

		return res, fmt.Errorf("failed to toggle review visibility: %w", err)
	}

	s.refreshCleaner(ctx, review.CleanerID)
	s.invalidate(ctx, review)

	return s.reload(ctx, id)
}

// storeImages uploads data URI images and keeps already hosted URLs as they are.
// It also returns the URLs uploaded by this call so a failed write can remove them.
func (s *serviceImpl) storeImages(ctx context.Context, images []dto.ImageRequest) ([]model.Image, []string, error) {
	stored := make([]model.Image, 0, len(images))
	uploaded := make([]string, 0, len(images))

	for _, image := range images {
		if !model.IsDataImage(image.URL) {
			stored = append(stored, model.Image{URL: image.URL, Caption: image.Caption})

			continue
		}

		decoded, err := model.DecodeDataImage(image.URL)
		if err != nil {
			s.discardImages(ctx, uploaded)

			return nil, nil, failure.BadRequest(err)
		}

		url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, model.ImageDirectory,
			uuid.NewString()+decoded.Extension, decoded.ContentType, decoded.Data)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload review image")
			s.discardImages(ctx, uploaded)

			return nil, nil, fmt.Errorf("failed to upload review image: %w", err)
		}

		stored = append(stored, model.Image{URL: url, Caption: image.Caption})
		uploaded = append(uploaded, url)
	}

	return stored, uploaded, nil
}

// discardImages removes freshly uploaded objects after the review write did not go through.
func (s *serviceImpl) discardImages(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}

	if err := s.deleteImages(context.WithoutCancel(ctx), urls); err != nil {
		log.Warn().Err(err).Int("count", len(urls)).Msg("failed to discard uploaded review images")
	}
}

func (s *serviceImpl) deleteImages(ctx context.Context, images []string) error {
	bucketName := s.cfg.External.S3.BucketName

	var failed int

	for _, imageURL := range images {
		objectName := s.s3.GetObjectNameFromURL(bucketName, imageURL)
		if objectName == constant.Empty {
			log.Warn().Str("url", imageURL).Msg("failed to extract object name from URL")

			continue
		}

		if err := s.s3.DeleteFile(ctx, bucketName, constant.Empty, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete file from S3")

			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d images", ErrDeleteImagesFromS3, failed)
	}

	return nil
}

// refreshCleaner recomputes the cleaner aggregate. Failures are logged; the review change stands.
func (s *serviceImpl) refreshCleaner(ctx context.Context, cleanerID *string) {
	if cleanerID == nil {
		return
	}

	if err := s.repo.RefreshCleanerRating(ctx, *cleanerID); err != nil {
		log.Error().Err(err).Str("cleanerID", *cleanerID).Msg("failed to refresh cleaner rating")
	}
}

func (s *serviceImpl) authorize(ctx context.Context, id, op string) (model.Review, error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return review, err
	}

	userID, role := shared.UserFromContext(ctx)
	if !s.permissions.Allows(op, role, userID != constant.Empty && review.UserID == userID) {
		return review, failure.ResourceRestrictedError
	}

	return review, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Review, error) {
	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return review, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return review, failure.NotFound("review not found") // nolint:wrapcheck
	}

	return review, nil
}

func (s *serviceImpl) reload(ctx context.Context, id string) (res dto.ReviewResponse, err error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, review model.Review) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReview, review.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete review from cache")
		}
	}()

	s.invalidateLists(ctx, review.ServiceID)
}

func (s *serviceImpl) invalidateLists(ctx context.Context, serviceID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheStatsReview, serviceID)); err != nil {
			log.Error().Err(err).Msg("failed to delete review stats from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
		shared.InvalidateCaches(c, s.cache, cacheCountReview)
	}()
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, bookingID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(bookingModel.CacheGet, bookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, bookingModel.CacheGets)
	}()
}
