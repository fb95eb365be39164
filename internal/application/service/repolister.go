package service

import (
	"context"
	"errors"
)

var ErrGithubUserNotFound = errors.New("github user not found")

// Repo is the slice of a repository listing the API exposes.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// RepoLister is the outbound port to the code-hosting API. Implementations
// must return ErrGithubUserNotFound when the username does not resolve.
type RepoLister interface {
	ListByUser(ctx context.Context, username string, limit int) ([]Repo, error)
}
