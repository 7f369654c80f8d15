package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/inventory-api/internal/domain/entity"
	"github.com/oksasatya/inventory-api/internal/domain/repository"
	"github.com/oksasatya/inventory-api/internal/infrastructure/memory"
	"github.com/oksasatya/inventory-api/pkg/helpers"
	"github.com/oksasatya/inventory-api/pkg/mailer"
)

type published struct {
	msgType string
	body    any
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, msgType string, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{msgType: msgType, body: body})
	return p.err
}

// failingUsers simulates an unavailable store
type failingUsers struct{ err error }

func (f failingUsers) Create(context.Context, *entity.User) error { return f.err }
func (f failingUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, f.err
}

func newAuthService(users repository.UserRepository, events EventPublisher) *AuthService {
	return NewAuthService(
		users,
		helpers.NewPasswordHasher(bcrypt.MinCost),
		helpers.NewJWTManager("test-secret", time.Hour),
		events,
		helpers.NewLoggerTo(io.Discard, "test"),
		"inventory-api",
		time.Second,
	)
}

func TestAuthService_RegisterStoresHashOnly(t *testing.T) {
	users := memory.NewUserRepository()
	svc := newAuthService(users, nil)

	u, err := svc.Register(context.Background(), RegisterInput{Name: " Ada ", Email: "Ada@Example.com ", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2"))

	stored, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.PasswordHash, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(memory.NewUserRepository(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "a", Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "b", Email: "A@X.com", Password: "q"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_RegisterPublishesWelcome(t *testing.T) {
	pub := &fakePublisher{}
	svc := newAuthService(memory.NewUserRepository(), pub)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "pw"})
	require.NoError(t, err)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "user.registered", pub.msgs[0].msgType)
	job, ok := pub.msgs[0].body.(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "ada@x.com", job.To)
	assert.Equal(t, mailer.TemplateWelcome, job.Template)
	assert.Equal(t, "Ada", job.Data["Name"])
	assert.NotContains(t, job.Data, "Password")
}

func TestAuthService_RegisterIgnoresPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := newAuthService(memory.NewUserRepository(), pub)

	u, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(memory.NewUserRepository(), nil)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@x.com", Password: "correct horse"})
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		res, err := svc.Login(ctx, " ADA@x.com", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.False(t, res.ExpiresAt.IsZero())
		assert.Equal(t, "ada@x.com", res.User.Email)

		claim, err := svc.JWT.Verify(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "ada@x.com", claim.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		res, err := svc.Login(ctx, "ada@x.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, res)
	})

	t.Run("unknown email", func(t *testing.T) {
		res, err := svc.Login(ctx, "nobody@x.com", "correct horse")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Nil(t, res)
	})
}

func TestAuthService_StoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newAuthService(failingUsers{err: boom}, nil)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "a", Email: "a@x.com", Password: "p"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Login(context.Background(), "a@x.com", "p")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_LoginWithoutExpiry(t *testing.T) {
	svc := newAuthService(memory.NewUserRepository(), nil)
	svc.JWT = helpers.NewJWTManager("test-secret", 0)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Name: "a", Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	assert.True(t, res.ExpiresAt.IsZero())
}
