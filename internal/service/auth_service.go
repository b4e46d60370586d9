package service

import (
	"adhyeta_backend/internal/config"
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/repository"
	"adhyeta_backend/internal/util"
	"adhyeta_backend/pkg/logger"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	OTPRepo  *repository.OTPRepository
	Redis    *redis.Client
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, otpRepo *repository.OTPRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		OTPRepo:  otpRepo,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}

// RequestPasswordReset issues a fresh OTP for the account, throttled per
// email through redis. Delivery (SMS/email) is the caller's concern; the
// masked phone is returned for display.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (maskedPhone string, err error) {
	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", util.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	if err := s.throttleOTP(ctx, email); err != nil {
		return "", err
	}

	code, err := util.GenerateOTP(s.Cfg.OTP.Length)
	if err != nil {
		return "", err
	}

	if err := s.OTPRepo.Create(&model.OTPCode{UserID: user.ID, Code: code}); err != nil {
		return "", err
	}

	logger.Log.Info("password reset OTP issued", zap.Uint("user_id", user.ID))

	return util.MaskPhone(user.Phone), nil
}

// throttleOTP allows at most MaxRequests OTP issues per email within the
// expiry window. Redis being down fails open: reset must keep working
// through a cache outage.
func (s *AuthService) throttleOTP(ctx context.Context, email string) error {
	key := fmt.Sprintf("otp:req:%s", email)

	count, err := s.Redis.Incr(ctx, key).Result()
	if err != nil {
		logger.Log.Warn("OTP throttle unavailable", zap.Error(err))
		return nil
	}
	if count == 1 {
		s.Redis.Expire(ctx, key, s.Cfg.OTP.ExpireMinutes)
	}

	if count > int64(s.Cfg.OTP.MaxRequests) {
		return util.ErrOTPThrottled
	}
	return nil
}

// VerifyOTP checks that a matching unused, unexpired code exists without
// consuming it, so the frontend can validate before asking for the new
// password.
func (s *AuthService) VerifyOTP(email, code string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	_, err = s.OTPRepo.LatestUnused(user.ID, code, s.otpCutoff())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrInvalidOTP
	}
	return err
}

// ResetPassword consumes the OTP and stores the new password hash.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < 6 {
		return util.ErrPasswordTooShort
	}

	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	if err != nil {
		return err
	}

	otp, err := s.OTPRepo.LatestUnused(user.ID, code, s.otpCutoff())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrInvalidOTP
	}
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.UserRepo.UpdatePassword(user.ID, string(hashed)); err != nil {
		return err
	}

	return s.OTPRepo.MarkUsed(otp.ID)
}

func (s *AuthService) otpCutoff() time.Time {
	if s.Cfg.OTP.ExpireMinutes <= 0 {
		return time.Time{}
	}
	return time.Now().Add(-s.Cfg.OTP.ExpireMinutes)
}
