package profile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nghiatran/devconnect/adapters/event"
	"github.com/nghiatran/devconnect/internal/domain/post"
	"github.com/nghiatran/devconnect/internal/domain/profile"
	"github.com/nghiatran/devconnect/internal/domain/user"
	"github.com/nghiatran/devconnect/pkg/logger"
)

type fakePostRepo struct {
	posts map[uuid.UUID]*post.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*post.Post)}
}

func (r *fakePostRepo) Save(_ context.Context, p *post.Post) error {
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, p *post.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return post.ErrPostNotFound
	}
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]*post.Post, error) {
	out := make([]*post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	for id, p := range r.posts {
		if p.OwnerID == ownerID {
			delete(r.posts, id)
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error {
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

func TestDeleteAccount_CascadesAndIsRepeatable(t *testing.T) {
	ctx := context.Background()
	log := logger.NewZapLogger("development")

	postRepo := newFakePostRepo()
	profileRepo := newFakeProfileRepo()
	userRepo := newFakeUserRepo()
	publisher := &fakeUserEventPublisher{}

	userID := uuid.New()
	require.NoError(t, userRepo.Save(ctx, &user.User{ID: userID, Email: "dev@example.com"}))
	require.NoError(t, profileRepo.Upsert(ctx, &profile.Profile{OwnerID: userID, Status: "Developer"}))
	require.NoError(t, postRepo.Save(ctx, &post.Post{ID: uuid.New(), OwnerID: userID, Text: "hello"}))
	require.NoError(t, postRepo.Save(ctx, &post.Post{ID: uuid.New(), OwnerID: userID, Text: "world"}))

	otherPost := &post.Post{ID: uuid.New(), OwnerID: uuid.New(), Text: "not mine"}
	require.NoError(t, postRepo.Save(ctx, otherPost))

	uc := NewDeleteAccountUseCase(postRepo, profileRepo, userRepo, publisher, log)
	require.NoError(t, uc.Execute(ctx, DeleteAccountInput{UserID: userID}))

	_, err := profileRepo.GetByOwnerID(ctx, userID)
	assert.True(t, errors.Is(err, profile.ErrProfileNotFound))

	_, err = userRepo.FindByID(ctx, userID)
	assert.True(t, errors.Is(err, user.ErrUserNotFound))

	remaining, err := postRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, otherPost.ID, remaining[0].ID)

	// Running the cascade again finds nothing to remove and still succeeds.
	require.NoError(t, uc.Execute(ctx, DeleteAccountInput{UserID: userID}))
}

func TestDeleteAccount_WithoutProfileOrPosts(t *testing.T) {
	ctx := context.Background()
	log := logger.NewZapLogger("development")

	userRepo := newFakeUserRepo()
	userID := uuid.New()
	require.NoError(t, userRepo.Save(ctx, &user.User{ID: userID, Email: "bare@example.com"}))

	uc := NewDeleteAccountUseCase(newFakePostRepo(), newFakeProfileRepo(), userRepo, &fakeUserEventPublisher{}, log)
	require.NoError(t, uc.Execute(ctx, DeleteAccountInput{UserID: userID}))

	_, err := userRepo.FindByID(ctx, userID)
	assert.True(t, errors.Is(err, user.ErrUserNotFound))
}
