package post

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
	"github.com/nghiatran/devconnect/internal/domain/user"
	"github.com/nghiatran/devconnect/pkg/apperror"
	"github.com/nghiatran/devconnect/pkg/logger"
)

type fakePostRepo struct {
	posts map[uuid.UUID]*post.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*post.Post)}
}

func clonePost(p *post.Post) *post.Post {
	cp := *p
	cp.Likes = append([]post.Like(nil), p.Likes...)
	cp.Comments = append([]post.Comment(nil), p.Comments...)
	return &cp
}

func (r *fakePostRepo) Save(_ context.Context, p *post.Post) error {
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, p *post.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return post.ErrPostNotFound
	}
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]*post.Post, error) {
	out := make([]*post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, clonePost(p))
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

type fakePostEventPublisher struct {
	mu     sync.Mutex
	events []event.PostEventPayload
}

func (p *fakePostEventPublisher) PublishPostEvent(_ context.Context, payload event.PostEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload)
	return nil
}

func seedAuthorAndPost(t *testing.T, userRepo *fakeUserRepo, postRepo *fakePostRepo) (*user.User, *post.Post) {
	t.Helper()
	author := &user.User{
		ID:     uuid.New(),
		Name:   "Jane Dev",
		Email:  "jane@example.com",
		Avatar: "https://gravatar.example/jane",
	}
	require.NoError(t, userRepo.Save(context.Background(), author))

	p := &post.Post{
		ID:       uuid.New(),
		OwnerID:  author.ID,
		Text:     "hello world",
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []post.Like{},
		Comments: []post.Comment{},
	}
	require.NoError(t, postRepo.Save(context.Background(), p))
	return author, p
}

func TestCreatePost_SnapshotsAuthor(t *testing.T) {
	ctx := context.Background()
	log := logger.NewZapLogger("development")
	postRepo := newFakePostRepo()
	userRepo := newFakeUserRepo()

	author := &user.User{ID: uuid.New(), Name: "Jane Dev", Avatar: "https://gravatar.example/jane"}
	require.NoError(t, userRepo.Save(ctx, author))

	uc := NewCreatePostUseCase(postRepo, userRepo, &fakePostEventPublisher{}, log)
	out, err := uc.Execute(ctx, CreatePostInput{OwnerID: author.ID, Text: "first post"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Dev", out.Post.Name)
	assert.Equal(t, author.Avatar, out.Post.Avatar)

	// The snapshot stays frozen after the author renames themselves.
	author.Name = "Jane Senior Dev"
	require.NoError(t, userRepo.Save(ctx, author))

	stored, err := postRepo.FindByID(ctx, out.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Dev", stored.Name)
}

func TestToggleLike_DoubleToggleRestoresSet(t *testing.T) {
	ctx := context.Background()
	log := logger.NewZapLogger("development")
	postRepo := newFakePostRepo()
	userRepo := newFakeUserRepo()
	_, p := seedAuthorAndPost(t, userRepo, postRepo)

	uc := NewToggleLikeUseCase(postRepo, &fakePostEventPublisher{}, log)

	likerA := uuid.New()
	likerB := uuid.New()

	outA, err := uc.Execute(ctx, ToggleLikeInput{PostID: p.ID, RequesterID: likerA})
	require.NoError(t, err)
	assert.True(t, outA.Liked)
	require.Len(t, outA.Likes, 1)

	outB, err := uc.Execute(ctx, ToggleLikeInput{PostID: p.ID, RequesterID: likerB})
	require.NoError(t, err)
	require.Len(t, outB.Likes, 2)

	// A's second toggle removes only A's entry; B stays liked.
	outA2, err := uc.Execute(ctx, ToggleLikeInput{PostID: p.ID, RequesterID: likerA})
	require.NoError(t, err)
	assert.False(t, outA2.Liked)
	require.Len(t, outA2.Likes, 1)
	assert.Equal(t, likerB, outA2.Likes[0].UserID)
}

func TestToggleLike_UnknownPost(t *testing.T) {
	uc := NewToggleLikeUseCase(newFakePostRepo(), &fakePostEventPublisher{}, logger.NewZapLogger("development"))
	_, err := uc.Execute(context.Background(), ToggleLikeInput{PostID: uuid.New(), RequesterID: uuid.New()})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeletePost_OnlyOwnerMay(t *testing.T) {
	ctx := context.Background()
	log := logger.NewZapLogger("development")
	postRepo := newFakePostRepo()
	userRepo := newFakeUserRepo()
	author, p := seedAuthorAndPost(t, userRepo, postRepo)

	uc := NewDeletePostUseCase(postRepo, &fakePostEventPublisher{}, log)

	err := uc.Execute(ctx, DeletePostInput{PostID: p.ID, RequesterID: uuid.New()})
	assert.True(t, errors.Is(err, apperror.ErrPermission))

	_, err = postRepo.FindByID(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, uc.Execute(ctx, DeletePostInput{PostID: p.ID, RequesterID: author.ID}))
	_, err = postRepo.FindByID(ctx, p.ID)
	assert.True(t, errors.Is(err, post.ErrPostNotFound))
}

func TestComments_RemoveByIDAndAuthorOnly(t *testing.T) {
	ctx := context.Background()
	log := logger.NewZapLogger("development")
	postRepo := newFakePostRepo()
	userRepo := newFakeUserRepo()
	_, p := seedAuthorAndPost(t, userRepo, postRepo)

	commenter := &user.User{ID: uuid.New(), Name: "Sam", Avatar: "https://gravatar.example/sam"}
	require.NoError(t, userRepo.Save(ctx, commenter))

	uc := NewCommentUseCase(postRepo, userRepo, &fakePostEventPublisher{}, log)

	first, err := uc.ExecuteAdd(ctx, AddCommentInput{PostID: p.ID, RequesterID: commenter.ID, Text: "nice"})
	require.NoError(t, err)
	require.Len(t, first.Comments, 1)
	assert.Equal(t, "Sam", first.Comments[0].Name)

	second, err := uc.ExecuteAdd(ctx, AddCommentInput{PostID: p.ID, RequesterID: commenter.ID, Text: "also this"})
	require.NoError(t, err)
	require.Len(t, second.Comments, 2)

	// Someone else cannot remove Sam's comment.
	_, err = uc.ExecuteRemove(ctx, RemoveCommentInput{
		PostID:      p.ID,
		CommentID:   second.Comments[0].ID,
		RequesterID: uuid.New(),
	})
	assert.True(t, errors.Is(err, apperror.ErrPermission))

	// Removal targets the id, not the position.
	out, err := uc.ExecuteRemove(ctx, RemoveCommentInput{
		PostID:      p.ID,
		CommentID:   second.Comments[0].ID,
		RequesterID: commenter.ID,
	})
	require.NoError(t, err)
	require.Len(t, out.Comments, 1)
	assert.Equal(t, "also this", out.Comments[0].Text)

	// A stale id is a miss, not a silent no-op on the remaining comment.
	_, err = uc.ExecuteRemove(ctx, RemoveCommentInput{
		PostID:      p.ID,
		CommentID:   second.Comments[0].ID,
		RequesterID: commenter.ID,
	})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
