package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nghiatran/devconnect/adapters/event"
	"github.com/nghiatran/devconnect/internal/domain/user"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/auth"
	"github.com/nghiatran/devconnect/pkg/logger"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email && existing.ID != u.ID {
			return user.ErrEmailTaken
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatarURL string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Avatar = avatarURL
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeUserEventPublisher struct {
	mu     sync.Mutex
	events []event.UserEventPayload
}

func (p *fakeUserEventPublisher) PublishUserEvent(_ context.Context, payload event.UserEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload)
	return nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService("unit-test-secret", time.Hour)
}

func TestRegister_ThenLogin(t *testing.T) {
	ctx := context.Background()
	log := logger.NewZapLogger("development")
	repo := newFakeUserRepo()

	registerUC := NewRegisterUseCase(repo, testJWTService(), &fakeUserEventPublisher{}, log)
	out, err := registerUC.Execute(ctx, RegisterInput{
		Name:     "Jane Dev",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.True(t, strings.Contains(out.User.Avatar, "gravatar.com/avatar/"))
	assert.NotEqual(t, "s3cret-pass", out.User.PasswordHash)

	loginUC := NewLoginUseCase(repo, testJWTService(), log)
	loginOut, err := loginUC.Execute(ctx, LoginInput{Email: "jane@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, loginOut.AccessToken)

	_, err = loginUC.Execute(ctx, LoginInput{Email: "jane@example.com", Password: "wrong"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	log := logger.NewZapLogger("development")
	repo := newFakeUserRepo()
	uc := NewRegisterUseCase(repo, testJWTService(), &fakeUserEventPublisher{}, log)

	_, err := uc.Execute(ctx, RegisterInput{Name: "Jane", Email: "jane@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, RegisterInput{Name: "Other Jane", Email: "jane@example.com", Password: "another-pass"})
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestLogin_UnknownEmailIsUnauthorized(t *testing.T) {
	uc := NewLoginUseCase(newFakeUserRepo(), testJWTService(), logger.NewZapLogger("development"))
	_, err := uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}
