package github

import (
	"context"
	"errors"
	"net/http"

	gh "github.com/google/go-github/v66/github"

	"github.com/nghiatran/devconnect/internal/application/service"
	"github.com/nghiatran/devconnect/internal/config"
	"github.com/nghiatran/devconnect/pkg/logger"
)

type githubRepoLister struct {
	client *gh.Client
	log    logger.Logger
}

// NewRepoLister builds the outbound GitHub adapter. The token is optional;
// without it the client runs against the unauthenticated rate limit.
func NewRepoLister(cfg config.Config, log logger.Logger) service.RepoLister {
	client := gh.NewClient(nil)
	if cfg.Github.Token != "" {
		client = client.WithAuthToken(cfg.Github.Token)
	}
	log.Info("GitHub repo lister initialized")
	return &githubRepoLister{client: client, log: log}
}

func (l *githubRepoLister) ListByUser(ctx context.Context, username string, limit int) ([]service.Repo, error) {
	opts := &gh.RepositoryListByUserOptions{
		Sort:      "created",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: limit,
		},
	}

	repos, _, err := l.client.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		var errResp *gh.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return nil, service.ErrGithubUserNotFound
		}
		return nil, err
	}

	out := make([]service.Repo, 0, len(repos))
	for _, r := range repos {
		out = append(out, service.Repo{
			ID:          r.GetID(),
			Name:        r.GetName(),
			HTMLURL:     r.GetHTMLURL(),
			Description: r.GetDescription(),
			Stars:       r.GetStargazersCount(),
			Watchers:    r.GetWatchersCount(),
			Forks:       r.GetForksCount(),
		})
	}
	return out, nil
}
