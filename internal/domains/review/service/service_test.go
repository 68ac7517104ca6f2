package service_test

import (
	"context"
	"encoding/base64"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cleanbook/config"
	otelMocks "cleanbook/infras/otel/mocks"
	s3Mocks "cleanbook/infras/s3/mocks"
	bookingMocks "cleanbook/internal/domains/booking/mocks"
	bookingModel "cleanbook/internal/domains/booking/model"
	reviewMocks "cleanbook/internal/domains/review/mocks"
	"cleanbook/internal/domains/review/model"
	"cleanbook/internal/domains/review/model/dto"
	"cleanbook/internal/domains/review/service"
	"cleanbook/permissions"
	cacheMocks "cleanbook/shared/cache/mocks"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/failure"
	gModel "cleanbook/shared/model"
	"cleanbook/shared/timezone"
)

const (
	customerID = "customer-1"
	cleanerID  = "cleaner-1"
	bookingID  = "5f0c8a7e-3d11-4b8b-9a55-0e6f1c2d3b44"
	reviewID   = "review-1"
	serviceID  = "service-1"
)

type fixture struct {
	svc      service.Review
	repo     *reviewMocks.MockReview
	bookings *bookingMocks.MockBooking
	s3       *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     reviewMocks.NewMockReview(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}

	redis := cacheMocks.NewMockRedisCache(ctrl)
	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Business.ReviewEditDays = 7
	cfg.External.S3.BucketName = "test-bucket"

	f.svc = service.New(f.repo, f.bookings, permissions.Get(), cfg, redis, otelMocks.NewOtel(), f.s3)

	return f
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func completedBooking() bookingModel.Booking {
	owner := customerID
	cleaner := cleanerID

	return bookingModel.Booking{
		ID:          bookingID,
		UserID:      &owner,
		ServiceID:   serviceID,
		ServiceName: "입주 청소",
		CleanerID:   &cleaner,
		Status:      bookingModel.StatusCompleted,
	}
}

func existingReview(age time.Duration) model.Review {
	cleaner := cleanerID

	review := model.Review{
		ID:        reviewID,
		BookingID: bookingID,
		UserID:    customerID,
		ServiceID: serviceID,
		CleanerID: &cleaner,
		Rating:    4,
		Content:   "꼼꼼하게 청소해 주셨어요.",
		Images:    gModel.JSONList[model.Image]{{URL: "https://cdn.example.com/reviews/a.png", Caption: "거실"}},
	}
	review.CreatedAt = timezone.Now().Add(-age)

	return review
}

func createRequest() dto.CreateReviewRequest {
	return dto.CreateReviewRequest{
		BookingID:   bookingID,
		Rating:      5,
		Cleanliness: 5,
		Content:     "정말 깨끗하게 청소해 주셨습니다.",
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name         string
		ctx          context.Context
		booking      func() bookingModel.Booking
		setupMock    func(f fixture)
		expectedCode int
		expectedMsg  string
	}{
		{
			name:    "owner reviews a completed booking",
			ctx:     userContext(customerID, constant.RoleCustomer),
			booking: completedBooking,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, review model.Review) error {
						assert.Equal(t, bookingID, review.BookingID)
						assert.Equal(t, customerID, review.UserID)
						assert.Equal(t, serviceID, review.ServiceID)
						require.NotNil(t, review.CleanerID)
						assert.Equal(t, cleanerID, *review.CleanerID)

						return nil
					})
				f.repo.EXPECT().RefreshCleanerRating(gomock.Any(), cleanerID).Return(nil)
			},
		},
		{
			name: "booking not completed",
			ctx:  userContext(customerID, constant.RoleCustomer),
			booking: func() bookingModel.Booking {
				booking := completedBooking()
				booking.Status = bookingModel.StatusConfirmed

				return booking
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "only completed bookings can be reviewed",
		},
		{
			name:         "not the owner",
			ctx:          userContext("customer-2", constant.RoleCustomer),
			booking:      completedBooking,
			expectedCode: http.StatusForbidden,
		},
		{
			name: "booking already linked to a review",
			ctx:  userContext(customerID, constant.RoleCustomer),
			booking: func() bookingModel.Booking {
				booking := completedBooking()
				linked := reviewID
				booking.ReviewID = &linked

				return booking
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "review already exists for this booking",
		},
		{
			name:    "concurrent duplicate hits the unique constraint",
			ctx:     userContext(customerID, constant.RoleCustomer),
			booking: completedBooking,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: model.ConstraintBooking})
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "review already exists for this booking",
		},
		{
			name:         "booking not found",
			ctx:          userContext(customerID, constant.RoleCustomer),
			booking:      func() bookingModel.Booking { return bookingModel.Booking{} },
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking(), nil)

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.Create(tt.ctx, createRequest())

			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				if tt.expectedMsg != "" {
					assert.Equal(t, tt.expectedMsg, err.Error())
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 5, res.Rating)
			assert.Equal(t, "입주 청소", res.ServiceName)
			assert.Empty(t, res.Images)
		})
	}
}

func TestCreateUploadsDataImages(t *testing.T) {
	f := newFixture(t)

	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	req := createRequest()
	req.Images = []dto.ImageRequest{
		{URL: "https://cdn.example.com/reviews/kept.jpg", Caption: "주방"},
		{URL: "data:image/png;base64," + payload, Caption: "욕실"},
	}

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completedBooking(), nil)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.s3.EXPECT().UploadFileBytes(gomock.Any(), "test-bucket", model.ImageDirectory, gomock.Any(), "image/png", []byte("png-bytes")).
		DoAndReturn(func(_ context.Context, _, _, fileName, _ string, _ []byte) (string, error) {
			assert.True(t, strings.HasSuffix(fileName, ".png"))

			return "https://cdn.example.com/reviews/" + fileName, nil
		})
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, review model.Review) error {
			require.Len(t, review.Images, 2)
			assert.Equal(t, model.Image{URL: "https://cdn.example.com/reviews/kept.jpg", Caption: "주방"}, review.Images[0])
			assert.True(t, strings.HasPrefix(review.Images[1].URL, "https://cdn.example.com/reviews/"))
			assert.Equal(t, "욕실", review.Images[1].Caption)

			return nil
		})
	f.repo.EXPECT().RefreshCleanerRating(gomock.Any(), cleanerID).Return(nil)

	_, err := f.svc.Create(userContext(customerID, constant.RoleCustomer), req)
	require.NoError(t, err)
}

func TestCreateRemovesUploadedImagesWhenInsertFails(t *testing.T) {
	tests := []struct {
		name         string
		createErr    error
		expectedCode int
	}{
		{
			name:         "duplicate review",
			createErr:    &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: model.ConstraintBooking},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "database error",
			createErr:    errors.New("connection reset"),
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
			req := createRequest()
			req.Images = []dto.ImageRequest{
				{URL: "https://cdn.example.com/reviews/kept.jpg"},
				{URL: "data:image/png;base64," + payload},
			}

			f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completedBooking(), nil)
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			f.s3.EXPECT().UploadFileBytes(gomock.Any(), "test-bucket", model.ImageDirectory, gomock.Any(), "image/png", []byte("png-bytes")).
				Return("https://cdn.example.com/reviews/new.png", nil)
			f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tt.createErr)
			f.s3.EXPECT().GetObjectNameFromURL("test-bucket", "https://cdn.example.com/reviews/new.png").Return("reviews/new.png")
			f.s3.EXPECT().DeleteFile(gomock.Any(), "test-bucket", "", "reviews/new.png").Return(nil)
			f.repo.EXPECT().RefreshCleanerRating(gomock.Any(), gomock.Any()).Times(0)

			_, err := f.svc.Create(userContext(customerID, constant.RoleCustomer), req)

			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, failure.GetCode(err))
		})
	}
}

func TestCreateVerifiesPaidBookings(t *testing.T) {
	f := newFixture(t)

	booking := completedBooking()
	booking.PaymentStatus = bookingModel.PaymentCompleted

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, review model.Review) error {
			assert.True(t, review.IsVerified)

			return nil
		})
	f.repo.EXPECT().RefreshCleanerRating(gomock.Any(), cleanerID).Return(nil)

	res, err := f.svc.Create(userContext(customerID, constant.RoleCustomer), createRequest())

	require.NoError(t, err)
	assert.True(t, res.IsVerified)
}

func TestCreateRejectsUnsupportedDataImage(t *testing.T) {
	f := newFixture(t)

	req := createRequest()
	req.Images = []dto.ImageRequest{{URL: "data:image/gif;base64,R0lGODlh"}}

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completedBooking(), nil)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := f.svc.Create(userContext(customerID, constant.RoleCustomer), req)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestGet(t *testing.T) {
	hidden := existingReview(time.Hour)
	hidden.IsHidden = true

	tests := []struct {
		name         string
		ctx          context.Context
		review       model.Review
		expectedCode int
	}{
		{name: "visible review for guests", ctx: context.Background(), review: existingReview(time.Hour)},
		{name: "hidden review is not found for customers", ctx: userContext(customerID, constant.RoleCustomer), review: hidden, expectedCode: http.StatusNotFound},
		{name: "hidden review is shown to admins", ctx: userContext("admin-1", constant.RoleAdmin), review: hidden},
		{name: "missing review", ctx: context.Background(), review: model.Review{}, expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.review, nil)

			res, err := f.svc.Get(tt.ctx, reviewID)

			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, reviewID, res.ID)
		})
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name         string
		ctx          context.Context
		review       model.Review
		req          dto.UpdateReviewRequest
		setupMock    func(f fixture)
		expectedCode int
	}{
		{
			name:   "owner changes rating within the edit window",
			ctx:    userContext(customerID, constant.RoleCustomer),
			review: existingReview(48 * time.Hour),
			req:    dto.UpdateReviewRequest{Rating: 2},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 2, fields[model.FieldRating])
						assert.NotContains(t, fields, model.FieldContent)

						return nil
					})
				f.repo.EXPECT().RefreshCleanerRating(gomock.Any(), cleanerID).Return(nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingReview(48*time.Hour), nil)
			},
		},
		{
			name:         "edit window elapsed",
			ctx:          userContext(customerID, constant.RoleCustomer),
			review:       existingReview(8 * 24 * time.Hour),
			req:          dto.UpdateReviewRequest{Content: "다시 생각해 보니 괜찮았어요."},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "admin cannot edit a customer review",
			ctx:          userContext("admin-1", constant.RoleAdmin),
			review:       existingReview(time.Hour),
			req:          dto.UpdateReviewRequest{Rating: 1},
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.review, nil)

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			_, err := f.svc.Update(tt.ctx, tt.req, reviewID)

			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestUpdateEmpty(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Update(userContext(customerID, constant.RoleCustomer), dto.UpdateReviewRequest{}, reviewID)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	review := existingReview(time.Hour)

	var wg sync.WaitGroup
	wg.Add(1)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(review, nil)
	f.repo.EXPECT().Remove(gomock.Any(), review).Return(nil)
	f.repo.EXPECT().RefreshCleanerRating(gomock.Any(), cleanerID).Return(nil)
	f.s3.EXPECT().GetObjectNameFromURL("test-bucket", "https://cdn.example.com/reviews/a.png").Return("reviews/a.png")
	f.s3.EXPECT().DeleteFile(gomock.Any(), "test-bucket", "", "reviews/a.png").
		DoAndReturn(func(_ context.Context, _, _, _ string) error {
			defer wg.Done()

			return errors.New("storage unavailable")
		})

	err := f.svc.Delete(userContext("admin-1", constant.RoleAdmin), reviewID)
	require.NoError(t, err)

	wg.Wait()
}

func TestDeleteForbidden(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingReview(time.Hour), nil)
	f.repo.EXPECT().Remove(gomock.Any(), gomock.Any()).Times(0)

	err := f.svc.Delete(userContext("customer-2", constant.RoleCustomer), reviewID)

	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestToggleHelpful(t *testing.T) {
	f := newFixture(t)
	ctx := userContext("customer-2", constant.RoleCustomer)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingReview(time.Hour), nil).Times(2)
	gomock.InOrder(
		f.repo.EXPECT().ToggleHelpful(gomock.Any(), reviewID, "customer-2").Return(1, nil),
		f.repo.EXPECT().ToggleHelpful(gomock.Any(), reviewID, "customer-2").Return(0, nil),
	)

	first, err := f.svc.ToggleHelpful(ctx, reviewID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.HelpfulCount)

	second, err := f.svc.ToggleHelpful(ctx, reviewID)
	require.NoError(t, err)
	assert.Equal(t, 0, second.HelpfulCount)
}

func TestToggleHelpfulRequiresUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ToggleHelpful(context.Background(), reviewID)

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestToggleHide(t *testing.T) {
	f := newFixture(t)
	review := existingReview(time.Hour)

	hidden := review
	hidden.IsHidden = true

	gomock.InOrder(
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(review, nil),
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hidden, nil),
	)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, true, fields[model.FieldIsHidden])
			assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

			return nil
		})
	f.repo.EXPECT().RefreshCleanerRating(gomock.Any(), cleanerID).Return(nil)

	res, err := f.svc.ToggleHide(userContext("admin-1", constant.RoleAdmin), reviewID)

	require.NoError(t, err)
	assert.True(t, res.IsHidden)
}

func TestAddAdminResponse(t *testing.T) {
	f := newFixture(t)
	review := existingReview(time.Hour)

	answered := review
	answered.Response = "이용해 주셔서 감사합니다."

	gomock.InOrder(
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(review, nil),
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(answered, nil),
	)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "이용해 주셔서 감사합니다.", fields[model.FieldResponse])
			assert.Equal(t, "admin-1", fields[model.FieldRespondedBy])
			assert.NotNil(t, fields[model.FieldRespondedAt])

			return nil
		})

	res, err := f.svc.AddAdminResponse(userContext("admin-1", constant.RoleAdmin),
		dto.AdminResponseRequest{Content: "이용해 주셔서 감사합니다."}, reviewID)

	require.NoError(t, err)
	require.NotNil(t, res.Response)
	assert.Equal(t, "이용해 주셔서 감사합니다.", res.Response.Content)
}

func TestGetByService(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "reviews.is_hidden = :is_hidden")
			assert.Equal(t, serviceID, args[model.FieldServiceID])

			return 1, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Review{existingReview(time.Hour)}, nil)
	f.repo.EXPECT().Stats(gomock.Any(), serviceID).
		Return(model.NewStats(model.RatingRow{Total: 1, Average: 4}, []model.StarCount{{Rating: 4, Count: 1}}), nil)

	res, err := f.svc.GetByService(context.Background(), serviceID, gDto.QueryParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, res.Reviews, 1)
	assert.Equal(t, 1, res.Stats.Total)
	assert.Equal(t, 1, res.Stats.Distribution[4])
}

func TestUploadImage(t *testing.T) {
	f := newFixture(t)

	f.s3.EXPECT().UploadFile(gomock.Any(), "test-bucket", model.ImageDirectory, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
			assert.True(t, strings.HasSuffix(fileName, ".jpg"))

			return "https://cdn.example.com/reviews/" + fileName, nil
		})

	res, err := f.svc.UploadImage(context.Background(), dto.UploadImageRequest{Image: &multipart.FileHeader{Filename: "living-room.jpg"}})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.URL, "https://cdn.example.com/reviews/"))
}
