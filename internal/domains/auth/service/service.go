package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"cleanbook/config"
	"cleanbook/infras/jwt"
	"cleanbook/infras/otel"
	"cleanbook/internal/domains/auth/model"
	"cleanbook/internal/domains/auth/model/dto"
	notificationService "cleanbook/internal/domains/notification/service"
	userModel "cleanbook/internal/domains/user/model"
	userDto "cleanbook/internal/domains/user/model/dto"
	userRepo "cleanbook/internal/domains/user/repository"
	"cleanbook/shared"
	"cleanbook/shared/cache"
	"cleanbook/shared/constant"
	"cleanbook/shared/failure"
	"cleanbook/shared/password"
	"cleanbook/shared/timezone"
)

const referralCodeAttempts = 3

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (userDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest, token string) error
	Me(ctx context.Context) (userDto.UserResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	notifier   notificationService.Notifier
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(
	userRepo userRepo.User,
	notifier notificationService.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		notifier:   notifier,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	email := dto.NormalizeEmail(req.Email)

	exists, err := s.userRepo.Exist(ctx, shared.FilterEq(userModel.TableName, userModel.FieldEmail, email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("email already registered")
	}

	var referrer userModel.User
	if req.ReferralCode != constant.Empty {
		referrer, err = s.userRepo.Get(ctx, shared.FilterEq(userModel.TableName, userModel.FieldReferralCode, req.ReferralCode),
			userModel.FieldID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get referrer")

			return res, fmt.Errorf("failed to get referrer: %w", err)
		}

		if referrer.ID == constant.Empty {
			return res, failure.BadRequestFromString("invalid referral code")
		}
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	rawToken, digest, err := model.NewToken(nil)
	if err != nil {
		return res, err
	}

	var referredBy *string
	if referrer.ID != constant.Empty {
		referredBy = &referrer.ID
	}

	user, err := s.insertUser(ctx, req, hashedPassword, digest, referredBy)
	if err != nil {
		return res, err
	}

	if referredBy != nil {
		if err := s.userRepo.AddPoints(ctx, referrer.ID, s.cfg.Business.ReferralBonus); err != nil {
			log.Error().Err(err).Str("referrerID", referrer.ID).Msg("failed to credit referral bonus")
		}
	}

	link := fmt.Sprintf("%s/verify-email/%s", s.cfg.App.ClientURL, rawToken)
	s.notifier.Mail(ctx, notificationService.VerificationMail(user.Email, user.Name, link))

	res.FromModel(user)

	return res, nil
}

// insertUser stores the account, drawing a fresh referral code when the previous one is taken.
func (s *serviceImpl) insertUser(ctx context.Context, req dto.RegisterRequest, hashedPassword, digest string, referredBy *string) (userModel.User, error) {
	for range referralCodeAttempts {
		code, err := userModel.GenerateReferralCode(nil)
		if err != nil {
			return userModel.User{}, err
		}

		user := req.ToUserModel(hashedPassword, digest, code, referredBy)

		err = s.userRepo.Insert(ctx, user)
		switch {
		case err == nil:
			return user, nil
		case shared.IsUniqueViolation(err, userModel.ConstraintEmail):
			return user, failure.BadRequestFromString("email already registered")
		case shared.IsUniqueViolation(err, userModel.ConstraintReferralCode):
			log.Warn().Str("referralCode", code).Msg("referral code collision, regenerating")
		default:
			log.Error().Err(err).Msg("failed to create user")

			return user, fmt.Errorf("failed to create user: %w", err)
		}
	}

	return userModel.User{}, fmt.Errorf("failed to create user: no unique referral code after %d attempts", referralCodeAttempts)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	emailFilter := shared.FilterEq(userModel.TableName, userModel.FieldEmail, dto.NormalizeEmail(req.Email))

	user, err := s.userRepo.Get(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized("invalid email or password")
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid email or password")
	}

	if !user.Active {
		return res, failure.Unauthorized("user account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	updatedFields := shared.TransformFields(lastLogin, user.ID)

	if err := s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	user.LastLoginAt = &lastLogin.LastLogin

	res.FromTokenPair(tokenPair)
	res.User.FromModel(user)

	return res, nil
}

// Logout revokes the current access token until it would have expired anyway.
func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	expiresAt, _ := ctx.Value(constant.ContextKeyTokenExp).(time.Time)

	if tokenID == constant.Empty {
		return failure.Unauthorized("authentication required")
	}

	ttl := int(time.Until(expiresAt).Seconds())
	if ttl <= 0 {
		return nil
	}

	if err = s.cache.Save(ctx, jwt.RevocationKey(tokenID), true, ttl); err != nil {
		log.Error().Err(err).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) VerifyEmail(ctx context.Context, token string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyEmail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.findBy(ctx, userModel.FieldVerificationToken, model.Digest(token))
	if err != nil {
		return err
	}

	if user.ID == constant.Empty {
		return failure.BadRequestFromString("invalid verification token")
	}

	fields := shared.TransformFields(struct{}{}, user.ID)
	fields[userModel.FieldIsVerified] = true
	fields[userModel.FieldVerificationToken] = nil

	return s.update(ctx, fields, user.ID)
}

// ForgotPassword mails a reset link. Unknown emails are not reported to the caller.
func (s *serviceImpl) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForgotPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.findBy(ctx, userModel.FieldEmail, dto.NormalizeEmail(req.Email))
	if err != nil {
		return err
	}

	if user.ID == constant.Empty || !user.Active {
		log.Info().Str("email", req.Email).Msg("password reset requested for unknown email")

		return nil
	}

	rawToken, digest, err := model.NewToken(nil)
	if err != nil {
		return err
	}

	validFor := s.cfg.Business.ResetTokenMinutes
	expires := timezone.Now().Add(time.Duration(validFor) * time.Minute)

	fields := shared.TransformFields(struct{}{}, user.ID)
	fields[userModel.FieldPasswordResetToken] = digest
	fields[userModel.FieldPasswordResetExpires] = expires

	if err = s.update(ctx, fields, user.ID); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.cfg.App.ClientURL, rawToken)
	s.notifier.Mail(ctx, notificationService.PasswordResetMail(user.Email, link, validFor))

	return nil
}

func (s *serviceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest, token string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.findBy(ctx, userModel.FieldPasswordResetToken, model.Digest(token))
	if err != nil {
		return err
	}

	if user.ID == constant.Empty || user.PasswordResetExpires == nil || !timezone.Now().Before(*user.PasswordResetExpires) {
		return failure.BadRequestFromString("invalid or expired reset token")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	fields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, user.ID)
	fields[userModel.FieldPasswordResetToken] = nil
	fields[userModel.FieldPasswordResetExpires] = nil

	return s.update(ctx, fields, user.ID)
}

func (s *serviceImpl) Me(ctx context.Context) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	user, err := s.findBy(ctx, userModel.FieldID, userID)
	if err != nil {
		return res, err
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found")
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.UserFromContext(ctx)

	user, err := s.findBy(ctx, userModel.FieldID, userID)
	if err != nil {
		return err
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	return s.update(ctx, shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, userID), userID)
}

func (s *serviceImpl) findBy(ctx context.Context, field string, value any) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterEq(userModel.TableName, field, value))
	if err != nil {
		log.Error().Err(err).Str("field", field).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *serviceImpl) update(ctx context.Context, fields map[string]any, id string) error {
	if err := s.userRepo.Update(ctx, fields, shared.FilterByID(id, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}
