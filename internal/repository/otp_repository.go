package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// OTPRepository stores short-lived phone verification codes. Codes are
// single use: a successful verification consumes the stored value.
type OTPRepository interface {
	Store(ctx context.Context, phone, code string, ttl time.Duration) error
	Verify(ctx context.Context, phone, code string) (bool, error)
}

type otpRepository struct {
	client *redis.Client
}

// NewOTPRepository returns a Redis-backed implementation.
func NewOTPRepository(client *redis.Client) OTPRepository {
	return &otpRepository{client: client}
}

func (r *otpRepository) Store(ctx context.Context, phone, code string, ttl time.Duration) error {
	return r.client.Set(ctx, otpKeyPrefix+phone, code, ttl).Err()
}

func (r *otpRepository) Verify(ctx context.Context, phone, code string) (bool, error) {
	key := otpKeyPrefix + phone
	stored, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return false, err
	}
	return true, nil
}
