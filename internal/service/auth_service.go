package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/wellfood-service/internal/auth"
	"github.com/spec-kit/wellfood-service/internal/config"
	"github.com/spec-kit/wellfood-service/internal/domain"
	"github.com/spec-kit/wellfood-service/internal/events"
	"github.com/spec-kit/wellfood-service/internal/repository"
	apperrors "github.com/spec-kit/wellfood-service/pkg/util"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	otpPattern   = regexp.MustCompile(`^\d{6}$`)
)

// AuthService coordinates signup, login and the admin/OTP flows.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	otps       repository.OTPRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	otpTTL     time.Duration
	seed       config.SeedConfig
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	AdminRepo  repository.AdminRepository
	OTPRepo    repository.OTPRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		otps:       deps.OTPRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
		otpTTL:     cfg.OTP.CodeTTL(),
		seed:       cfg.Seed,
	}
}

// Signup creates a new customer account and issues a token for it.
func (s *AuthService) Signup(ctx context.Context, name, email, password, phone, address string) (*domain.User, string, time.Time, error) {
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, "", time.Time{}, apperrors.NewValidationError("phone must be 10 digits", nil)
	}

	exists, err := s.users.ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exists {
		return nil, "", time.Time{}, apperrors.NewDuplicateAccount("user already exists with this email or phone")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  phone,
		Address:      address,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserRegistered, events.Actor{Role: domain.RoleUser, SubjectID: user.ID, Email: user.Email},
		events.UserRegisteredPayload{Name: user.Name, Email: user.Email, PhoneNumber: user.PhoneNumber})

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates a customer. Accounts stored before hashing was
// introduced may still carry a plaintext password: when the bcrypt compare
// fails, a plaintext equality match is accepted once and the stored value
// is rehashed in place (upgrade-on-read).
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", time.Time{}, apperrors.NewNotFound("user")
		}
		return nil, "", time.Time{}, err
	}

	upgraded := false
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if user.PasswordHash != password {
			return nil, "", time.Time{}, apperrors.NewInvalidPassword()
		}
		hash, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return nil, "", time.Time{}, err
		}
		user.PasswordHash = hash
		if err := s.users.Update(ctx, user); err != nil {
			return nil, "", time.Time{}, err
		}
		upgraded = true
	}

	s.publish(ctx, events.EventUserLoggedIn, events.Actor{Role: domain.RoleUser, SubjectID: user.ID, Email: user.Email},
		events.UserLoggedInPayload{Email: user.Email, LegacyUpgraded: upgraded})

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginAdmin authenticates against the admins collection only. Unknown
// email and wrong password deliberately produce the same failure.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(admin.ID, domain.RoleAdmin, admin.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// Logout currently no-ops for the stateless JWT approach; clients discard
// the token.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// SeedAdmin guarantees the configured admin account exists. It is a no-op
// when no seed email is configured or the account is already present.
func (s *AuthService) SeedAdmin(ctx context.Context) (*domain.Admin, error) {
	if s.seed.AdminEmail == "" || s.seed.AdminPassword == "" {
		return nil, nil
	}

	if existing, err := s.admins.GetByEmail(ctx, s.seed.AdminEmail); err == nil {
		return existing, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := auth.HashPassword(s.seed.AdminPassword, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		Name:         s.seed.AdminName,
		Email:        s.seed.AdminEmail,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// RequestOTP generates a 6-digit verification code for the phone number
// and hands it to the notification pipeline for delivery.
func (s *AuthService) RequestOTP(ctx context.Context, phone string) error {
	if !phonePattern.MatchString(phone) {
		return apperrors.NewValidationError("phone must be 10 digits", nil)
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.otps.Store(ctx, phone, code, s.otpTTL); err != nil {
		return err
	}

	s.publish(ctx, events.EventOTPRequested, events.Actor{Role: domain.RoleUser},
		events.OTPRequestedPayload{PhoneNumber: phone, Code: code})
	return nil
}

// VerifyOTP checks and consumes a previously requested code.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) error {
	if !phonePattern.MatchString(phone) || !otpPattern.MatchString(code) {
		return apperrors.NewValidationError("phone must be 10 digits and code 6 digits", nil)
	}

	ok, err := s.otps.Verify(ctx, phone, code)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewDomainError("INVALID_OTP", "invalid or expired code", http.StatusBadRequest, nil)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		Actor:   actor,
		Payload: payload,
	})
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
