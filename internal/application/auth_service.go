package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
	repo "github.com/oksasatya/inventory-api/internal/domain/repository"
	"github.com/oksasatya/inventory-api/pkg/helpers"
	"github.com/oksasatya/inventory-api/pkg/mailer"
)

// EventPublisher delivers background jobs, RabbitMQ in production.
type EventPublisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

const msgUserRegistered = "user.registered"

type AuthService struct {
	Users        repo.UserRepository
	Hasher       *helpers.PasswordHasher
	JWT          *helpers.JWTManager
	Events       EventPublisher
	Logger       *logrus.Logger
	AppName      string
	StoreTimeout time.Duration
	now          func() time.Time
}

func NewAuthService(users repo.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, events EventPublisher, logger *logrus.Logger, appName string, storeTimeout time.Duration) *AuthService {
	return &AuthService{
		Users:        users,
		Hasher:       hasher,
		JWT:          jwt,
		Events:       events,
		Logger:       logger,
		AppName:      appName,
		StoreTimeout: storeTimeout,
		now:          time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// storeCtx bounds a single store call; hashing stays outside it.
func (s *AuthService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.StoreTimeout)
}

// Register hashes the password and persists a new identity.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		if !errors.Is(err, helpers.ErrPasswordTooLong) {
			helpers.LogError(s.Logger, "hash password failed", err, nil)
		}
		return nil, err
	}
	u := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	c, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.Users.Create(c, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		helpers.LogError(s.Logger, "create user failed", err, logrus.Fields{"email": u.Email})
		return nil, fmt.Errorf("create user: %w", err)
	}

	stats.Add(statRegistrations, 1)
	s.publishWelcome(ctx, u)
	return u, nil
}

func (s *AuthService) publishWelcome(ctx context.Context, u *entity.User) {
	if s.Events == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"Name":    u.Name,
			"Email":   u.Email,
			"AppName": s.AppName,
		},
	}
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Events.PublishJSON(c, msgUserRegistered, job); err != nil {
		helpers.LogWarn(s.Logger, "publish welcome email failed", err, logrus.Fields{"user_id": u.ID})
	}
}

// Login looks the identity up by email, verifies the password and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	c, cancel := s.storeCtx(ctx)
	u, err := s.Users.GetByEmail(c, normalizeEmail(email))
	cancel()
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			stats.Add(statLoginFailed, 1)
			return nil, ErrUserNotFound
		}
		helpers.LogError(s.Logger, "lookup user failed", err, nil)
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.Hasher.Verify(password, u.PasswordHash)
	if err != nil {
		helpers.LogError(s.Logger, "verify password failed", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}
	if !ok {
		stats.Add(statLoginFailed, 1)
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Issue(helpers.SessionClaim{Subject: u.Email})
	if err != nil {
		helpers.LogError(s.Logger, "issue token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}
	stats.Add(statLoginOK, 1)
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}
