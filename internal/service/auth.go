package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"review_system/internal/domain"
	"review_system/internal/mail"
	"review_system/internal/metrics"
	"review_system/internal/repository"
	"review_system/internal/utils"
)

// AuthService runs the signup and token exchange flow:
// unregistered -> pending (code mailed) -> active (token issued).
type AuthService struct {
	users     *repository.UserRepository
	codes     *utils.CodeGenerator
	mailer    mail.Sender
	reserved  []string
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

// AuthConfig holds the settings AuthService needs from the environment.
type AuthConfig struct {
	JWTSecret         string
	AccessTokenTTL    time.Duration
	ReservedUsernames []string
}

func NewAuthService(users *repository.UserRepository, codes *utils.CodeGenerator, mailer mail.Sender, cfg AuthConfig) *AuthService {
	return &AuthService{
		users:     users,
		codes:     codes,
		mailer:    mailer,
		reserved:  cfg.ReservedUsernames,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.AccessTokenTTL,
		now:       time.Now,
	}
}

// IsReserved reports whether nobody may register username.
func IsReserved(reserved []string, username string) bool {
	for _, r := range reserved {
		if strings.EqualFold(r, username) {
			return true
		}
	}
	return false
}

func reservedError(username string) *ValidationError {
	return FieldError("username", fmt.Sprintf("Username %q is reserved.", username))
}

// Signup registers an inactive user, or reuses the one with exactly this
// username and email, and mails it a fresh confirmation code.
func (s *AuthService) Signup(ctx context.Context, username, email string) (*domain.User, error) {
	if IsReserved(s.reserved, username) {
		return nil, reservedError(username)
	}
	u, err := s.pendingUser(ctx, username, email)
	if err != nil {
		return nil, err
	}
	// reload so the code hashes the stored timestamps
	if u, err = s.users.GetByID(ctx, u.ID); err != nil {
		return nil, err
	}
	code := s.codes.Make(u)
	msg := mail.Message{
		To:      u.Email,
		Subject: "Your confirmation code",
		Body:    "Use this confirmation code to get your access token: " + code,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("deliver confirmation code: %w", err)
	}
	metrics.Signups.Inc()
	logrus.WithField("username", u.Username).Info("Confirmation code sent")
	return u, nil
}

func (s *AuthService) pendingUser(ctx context.Context, username, email string) (*domain.User, error) {
	byName, err := s.users.GetByUsername(ctx, username)
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}
	if byName != nil && byName.Email == email {
		return byName, nil
	}
	byEmail, err := s.users.GetByEmail(ctx, email)
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}
	verr := &ValidationError{}
	if byName != nil {
		verr.Add("username", "A user with that username already exists.")
	}
	if byEmail != nil {
		verr.Add("email", "A user with that email already exists.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	u := &domain.User{Username: username, Email: email, Role: domain.RoleUser}
	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsDuplicate(err) {
			return nil, FieldError(NonFieldErrors, "A user with that username or email already exists.")
		}
		return nil, err
	}
	return u, nil
}

// IssueToken exchanges a confirmation code for an access token and
// activates the user. A rejected code changes nothing.
func (s *AuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", notFound(err)
	}
	if err := s.codes.Check(u, code); err != nil {
		metrics.InvalidCodes.Inc()
		return "", ErrInvalidCode
	}
	now := s.now()
	u.IsActive = true
	u.LastLogin = &now
	if err := s.users.Update(ctx, u); err != nil {
		return "", err
	}
	token, err := utils.GenerateJWT(u.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	metrics.TokensIssued.Inc()
	return token, nil
}

// Authenticate resolves an access token to its active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := utils.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if repository.IsNotFound(err) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// IsAuthError reports whether err rejects the presented credentials.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
