package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/bolzplatz/tippspiel/internal/domain/user"
	"github.com/bolzplatz/tippspiel/internal/platform/logging"
)

const (
	minPasswordLength = 8
	maxUsernameLength = 32
)

// AuthConfig holds the signup gate and token parameters.
type AuthConfig struct {
	// AccessCode is the shared invite code required to register. The game
	// is for a closed circle of friends, not the open internet.
	AccessCode string
	JWTSecret  []byte
	TokenTTL   time.Duration
}

// Session is a logged-in user plus their bearer token.
type Session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// AuthService covers registration, login and account maintenance.
type AuthService struct {
	userRepo user.Repository
	cfg      AuthConfig
	logger   *logging.Logger
	now      func() time.Time
}

func NewAuthService(userRepo user.Repository, cfg AuthConfig, logger *logging.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates an account behind the shared access code and logs the
// new user straight in.
func (s *AuthService) Register(ctx context.Context, username, password, accessCode string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLength {
		return Session{}, fmt.Errorf("%w: username must be 1 to %d characters", ErrInvalidInput, maxUsernameLength)
	}
	if len(password) < minPasswordLength {
		return Session{}, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if subtle.ConstantTimeCompare([]byte(accessCode), []byte(s.cfg.AccessCode)) != 1 {
		return Session{}, fmt.Errorf("%w: wrong access code", ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.userRepo.Create(ctx, user.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	return s.newSession(id, username)
}

// Login checks the credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	u, found, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return Session{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return Session{}, fmt.Errorf("%w: unknown username or wrong password", ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, fmt.Errorf("%w: unknown username or wrong password", ErrUnauthorized)
	}

	return s.newSession(u.ID, u.Username)
}

// ChangePassword swaps the password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ChangePassword")
	defer span.End()

	if len(next) < minPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	u, err := s.verifyPassword(ctx, userID, current)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, u.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ChangeUsername renames the account after verifying the password.
func (s *AuthService) ChangeUsername(ctx context.Context, userID int64, password, username string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ChangeUsername")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be 1 to %d characters", ErrInvalidInput, maxUsernameLength)
	}
	u, err := s.verifyPassword(ctx, userID, password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateUsername(ctx, u.ID, username); err != nil {
		return fmt.Errorf("update username: %w", err)
	}
	return nil
}

// DeleteAccount removes the user and everything hanging off them.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64, password string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.DeleteAccount")
	defer span.End()

	u, err := s.verifyPassword(ctx, userID, password)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, u.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// VerifyToken validates a bearer token and returns the user id it names.
func (s *AuthService) VerifyToken(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.cfg.JWTSecret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now().UTC() }))
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid token subject", ErrUnauthorized)
	}
	return id, nil
}

func (s *AuthService) verifyPassword(ctx context.Context, userID int64, password string) (user.User, error) {
	u, found, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return user.User{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return user.User{}, fmt.Errorf("%w: wrong password", ErrUnauthorized)
	}
	return u, nil
}

func (s *AuthService) newSession(userID int64, username string) (Session, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.JWTSecret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{UserID: userID, Username: username, Token: token}, nil
}
