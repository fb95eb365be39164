package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/nghiatran/devconnect/internal/domain/post"
	"github.com/nghiatran/devconnect/internal/domain/profile"
	"github.com/nghiatran/devconnect/internal/domain/user"
	"github.com/nghiatran/devconnect/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	testLogger  logger.Logger
	userRepo    user.Repository
	profileRepo profile.Repository
	postRepo    post.Repository
	testUser    *user.User
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.testLogger = logger.NewZapLogger("development")
	s.userRepo = NewPostgresUserRepo(s.dbPool, s.testLogger)
	s.profileRepo = NewPostgresProfileRepo(s.dbPool, s.testLogger)
	s.postRepo = NewPostgresPostRepo(s.dbPool, s.testLogger)

	s.testUser = &user.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "testuser@example.com",
		Avatar:       "https://gravatar.example/testuser",
		PasswordHash: "hashedpassword",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Save(ctx, s.testUser); err != nil {
		s.T().Fatalf("Failed to seed user: %s", err)
	}
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) Test_UserRepo_DuplicateEmail() {
	ctx := context.Background()

	dup := &user.User{
		ID:           uuid.New(),
		Name:         "Other",
		Email:        s.testUser.Email,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	err := s.userRepo.Save(ctx, dup)
	s.ErrorIs(err, user.ErrEmailTaken)
}

func (s *RepoIntegrationTestSuite) Test_ProfileRepo_UpsertRoundTrip() {
	ctx := context.Background()

	to := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &profile.Profile{
		OwnerID:        s.testUser.ID,
		Status:         "Developer",
		Company:        "Acme",
		GithubUsername: "testuser",
		Skills:         []string{"go", "postgres"},
		Social:         profile.SocialLinks{Twitter: "https://twitter.com/testuser"},
		Experience: []profile.Experience{
			{ID: uuid.New(), Title: "Engineer", Company: "Acme", From: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), To: &to},
		},
		Education: []profile.Education{},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.NoError(s.profileRepo.Upsert(ctx, p))

	found, err := s.profileRepo.GetByOwnerID(ctx, s.testUser.ID)
	s.NoError(err)
	s.Equal("Developer", found.Status)
	s.Equal([]string{"go", "postgres"}, found.Skills)
	s.Equal("https://twitter.com/testuser", found.Social.Twitter)
	s.Len(found.Experience, 1)
	s.Equal("Engineer", found.Experience[0].Title)
	s.Equal(s.testUser.Name, found.UserName)

	// Upsert against the same owner updates in place, never duplicates.
	p.Status = "Senior Developer"
	s.NoError(s.profileRepo.Upsert(ctx, p))

	all, err := s.profileRepo.ListAll(ctx)
	s.NoError(err)
	s.Len(all, 1)
	s.Equal("Senior Developer", all[0].Status)
}

func (s *RepoIntegrationTestSuite) Test_ProfileRepo_MissingOwner() {
	_, err := s.profileRepo.GetByOwnerID(context.Background(), uuid.New())
	s.ErrorIs(err, profile.ErrProfileNotFound)
}

func (s *RepoIntegrationTestSuite) Test_PostRepo_SaveUpdateDelete() {
	ctx := context.Background()

	newPost := &post.Post{
		ID:        uuid.New(),
		OwnerID:   s.testUser.ID,
		Text:      "integration post",
		Name:      s.testUser.Name,
		Avatar:    s.testUser.Avatar,
		Likes:     []post.Like{},
		Comments:  []post.Comment{},
		CreatedAt: time.Now().UTC(),
	}
	s.NoError(s.postRepo.Save(ctx, newPost))

	found, err := s.postRepo.FindByID(ctx, newPost.ID)
	s.NoError(err)
	s.Equal(newPost.Text, found.Text)
	s.Empty(found.Likes)

	found.ToggleLike(s.testUser.ID)
	found.AddComment(post.Comment{UserID: s.testUser.ID, Text: "first", Name: s.testUser.Name})
	s.NoError(s.postRepo.Update(ctx, found))

	reread, err := s.postRepo.FindByID(ctx, newPost.ID)
	s.NoError(err)
	s.Len(reread.Likes, 1)
	s.Len(reread.Comments, 1)
	s.Equal("first", reread.Comments[0].Text)

	s.NoError(s.postRepo.Delete(ctx, newPost.ID))
	_, err = s.postRepo.FindByID(ctx, newPost.ID)
	s.True(errors.Is(err, post.ErrPostNotFound))
}

func (s *RepoIntegrationTestSuite) Test_PostRepo_UpdateMissingPost() {
	ghost := &post.Post{
		ID:       uuid.New(),
		OwnerID:  s.testUser.ID,
		Likes:    []post.Like{},
		Comments: []post.Comment{},
	}
	err := s.postRepo.Update(context.Background(), ghost)
	s.ErrorIs(err, post.ErrPostNotFound)
}
