package auth

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"metastar/models"
	"metastar/services/license"
	"metastar/services/mailer"
	"metastar/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultAuthService is the production AuthService. All durable state lives
// in Redis; each call is independent and there is no in-process shared state.
type DefaultAuthService struct {
	Cache   *redis.Client
	License license.Client
	Mailer  mailer.Mailer
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultAuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// generateCode returns a uniformly random 6-digit decimal code. All 10^6
// outcomes are equally likely; leading zeros are kept.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// InitiateLogin runs the guarded OTP initiation: lockout check, daily send
// cap, fresh entitlement lookup, then code generation, storage and delivery.
// Validation failures never reach the license or email providers.
func (s *DefaultAuthService) InitiateLogin(ctx context.Context, email string) error {
	logger := utils.GetLogger()

	// Active lockout? The marker value is the epoch-ms instant it lifts.
	blockVal, err := s.Cache.Get(ctx, utils.LockKeyPrefix+email).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read lockout marker: %w", err)
	}
	if err == nil {
		until, parseErr := strconv.ParseInt(blockVal, 10, 64)
		if parseErr == nil && s.now().UnixMilli() < until {
			return LockedError{RetryAfter: "24h"}
		}
	}

	// Daily send cap. The key embeds the UTC date so it resets by naming;
	// the TTL just keeps stale keys from piling up.
	sendsKey := s.sendCountKey(email)
	count, err := s.Cache.Get(ctx, sendsKey).Int()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read send counter: %w", err)
	}
	if count >= utils.DailySendCap {
		return ErrDailyLimit
	}

	// Entitlement is checked on every initiation so a revoked license
	// blocks the very next login attempt.
	entitled, err := s.License.HasEntitlement(ctx, email)
	if err != nil {
		return ProviderError{Err: err}
	}
	if !entitled {
		return ErrNoSubscription
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	// Overwrite any prior challenge: only the latest code verifies.
	challenge := models.OtpChallenge{Code: code, Attempts: 0}
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to encode challenge: %w", err)
	}
	if err := s.Cache.Set(ctx, utils.OTPKeyPrefix+email, payload, utils.OTPChallengeTTL).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	// INCR is atomic, though the cap check above is still a separate read;
	// concurrent initiations can squeeze past the cap. Accepted: this is an
	// abuse deterrent, not a safety invariant.
	newCount, err := s.Cache.Incr(ctx, sendsKey).Result()
	if err != nil {
		return fmt.Errorf("failed to increment send counter: %w", err)
	}
	if newCount == 1 {
		if err := s.Cache.Expire(ctx, sendsKey, utils.SendCountTTL).Err(); err != nil {
			logger.Warn("Failed to set send counter TTL", zap.Error(err))
		}
	}

	if err := s.Mailer.SendCode(ctx, email, code); err != nil {
		logger.Error("Failed to deliver OTP email", zap.String("email", email), zap.Error(err))
		return DeliveryError{Err: err}
	}

	logger.Sugar().Infof("Sent OTP to %s (expires in %v)", email, utils.OTPChallengeTTL)
	return nil
}

// VerifyCode checks the submitted code against the live challenge and mints
// a 7-day session token on success. Once three attempts have failed, the
// next attempt trips a 24h lockout without being compared to the stored code.
func (s *DefaultAuthService) VerifyCode(ctx context.Context, email, code string) (string, error) {
	otpKey := utils.OTPKeyPrefix + email

	raw, err := s.Cache.Get(ctx, otpKey).Result()
	if err == redis.Nil {
		return "", ErrCodeExpired
	}
	if err != nil {
		return "", fmt.Errorf("failed to read challenge: %w", err)
	}

	var challenge models.OtpChallenge
	if err := json.Unmarshal([]byte(raw), &challenge); err != nil {
		return "", fmt.Errorf("failed to decode challenge: %w", err)
	}

	if challenge.Attempts >= utils.MaxVerifyAttempts {
		until := s.now().Add(utils.LockoutDuration).UnixMilli()
		if err := s.Cache.Set(ctx, utils.LockKeyPrefix+email, strconv.FormatInt(until, 10), utils.LockoutDuration).Err(); err != nil {
			return "", fmt.Errorf("failed to store lockout marker: %w", err)
		}
		if err := s.Cache.Del(ctx, otpKey).Err(); err != nil {
			utils.GetLogger().Warn("Failed to delete challenge on lockout", zap.Error(err))
		}
		return "", LockoutTrippedError{}
	}

	if challenge.Code != code {
		challenge.Attempts++
		payload, err := json.Marshal(challenge)
		if err != nil {
			return "", fmt.Errorf("failed to encode challenge: %w", err)
		}
		if err := s.Cache.Set(ctx, otpKey, payload, utils.OTPChallengeTTL).Err(); err != nil {
			return "", fmt.Errorf("failed to store challenge: %w", err)
		}
		return "", IncorrectCodeError{AttemptsRemaining: utils.MaxVerifyAttempts - challenge.Attempts}
	}

	if err := s.Cache.Del(ctx, otpKey).Err(); err != nil {
		utils.GetLogger().Warn("Failed to delete challenge after verification", zap.Error(err))
	}

	token, err := utils.GenerateToken(email, utils.SessionTTL)
	if err != nil {
		return "", fmt.Errorf("failed to mint session token: %w", err)
	}
	return token, nil
}

func (s *DefaultAuthService) sendCountKey(email string) string {
	return utils.SendCountPrefix + email + ":" + s.now().UTC().Format("2006-01-02")
}
