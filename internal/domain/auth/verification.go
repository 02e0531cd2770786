package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pinehaven/pinehaven-api/internal/pkg/email"
)

// VerificationService handles email verification and password reset
type VerificationService struct {
	redis        *redis.Client
	emailService *email.Service
	baseURL      string
}

// NewVerificationService creates verification service
func NewVerificationService(redis *redis.Client, emailService *email.Service, baseURL string) *VerificationService {
	return &VerificationService{
		redis:        redis,
		emailService: emailService,
		baseURL:      baseURL,
	}
}

// Verification code settings
const (
	VerificationCodeLength = 6
	VerificationCodeTTL    = 15 * time.Minute
	ResetTokenTTL          = 1 * time.Hour
)

// Redis key prefixes
const (
	keyPrefixVerification = "verify:"
	keyPrefixReset        = "reset:"
)

// GenerateVerificationCode generates a 6-digit code and stores in Redis
func (s *VerificationService) GenerateVerificationCode(ctx context.Context, userID uuid.UUID) (string, error) {
	code := generateNumericCode(VerificationCodeLength)

	key := keyPrefixVerification + userID.String()
	if err := s.redis.Set(ctx, key, code, VerificationCodeTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store verification code: %w", err)
	}

	return code, nil
}

// SendVerificationEmail generates code and sends verification email
func (s *VerificationService) SendVerificationEmail(ctx context.Context, userID uuid.UUID, addr, name string) error {
	code, err := s.GenerateVerificationCode(ctx, userID)
	if err != nil {
		return err
	}

	s.emailService.SendVerificationCode(addr, name, code)
	return nil
}

// VerifyEmail checks the code and returns true if valid
func (s *VerificationService) VerifyEmail(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	key := keyPrefixVerification + userID.String()

	storedCode, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil // Code expired or not found
	}
	if err != nil {
		return false, err
	}

	if storedCode != code {
		return false, nil
	}

	// Delete code after successful verification
	s.redis.Del(ctx, key)

	return true, nil
}

// GenerateResetToken generates a password reset token
func (s *VerificationService) GenerateResetToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token := generateSecureToken(32)

	// Store token -> userID mapping
	key := keyPrefixReset + token
	if err := s.redis.Set(ctx, key, userID.String(), ResetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	return token, nil
}

// SendPasswordResetEmail generates token and sends reset email
func (s *VerificationService) SendPasswordResetEmail(ctx context.Context, userID uuid.UUID, addr, name string) error {
	token, err := s.GenerateResetToken(ctx, userID)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	s.emailService.SendPasswordReset(addr, name, resetURL)
	return nil
}

// ValidateResetToken checks if token is valid and returns userID
func (s *VerificationService) ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	key := keyPrefixReset + token

	userIDStr, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return uuid.Nil, ErrInvalidResetToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, ErrInvalidResetToken
	}

	return userID, nil
}

// InvalidateResetToken removes a reset token after use
func (s *VerificationService) InvalidateResetToken(ctx context.Context, token string) {
	key := keyPrefixReset + token
	s.redis.Del(ctx, key)
}
