// Package gh wraps the GitHub API surface the action needs: the pull
// request's changed files and a sticky summary comment, plus the action
// output/summary files provided by the runner.
package gh

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/rs/zerolog"
)

// commentMarker identifies the scan's own comment so reruns update it in
// place instead of piling up new comments.
const commentMarker = "<!-- svelte-migration-scan -->"

// Client is a thin wrapper over go-github scoped to one repository.
type Client struct {
	gh     *github.Client
	owner  string
	repo   string
	logger zerolog.Logger
}

// NewClient builds an authenticated client for the given "owner/repo" slug.
func NewClient(token, repoSlug string, logger zerolog.Logger) (*Client, error) {
	owner, repo, ok := strings.Cut(repoSlug, "/")
	if ok && (owner == "" || repo == "") {
		ok = false
	}
	if !ok {
		return nil, fmt.Errorf("invalid repository slug %q, want owner/repo", repoSlug)
	}
	return &Client{
		gh:     github.NewClient(nil).WithAuthToken(token),
		owner:  owner,
		repo:   repo,
		logger: logger,
	}, nil
}

// ChangedFiles lists the file paths modified in the pull request, excluding
// removed files. Pagination is followed to the end.
func (c *Client) ChangedFiles(ctx context.Context, prNumber int) ([]string, error) {
	var paths []string
	opts := &github.ListOptions{PerPage: 100}
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, c.owner, c.repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing files for PR #%d: %w", prNumber, err)
		}
		for _, f := range files {
			if f.GetStatus() == "removed" {
				continue
			}
			paths = append(paths, f.GetFilename())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug().Int("pr", prNumber).Int("files", len(paths)).Msg("listed changed files")
	return paths, nil
}

// UpsertSummaryComment posts the report as a PR comment, editing the previous
// scan comment when one exists.
func (c *Client) UpsertSummaryComment(ctx context.Context, prNumber int, body string) error {
	body = commentMarker + "\n" + body

	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, c.owner, c.repo, prNumber, opts)
		if err != nil {
			return fmt.Errorf("listing comments on PR #%d: %w", prNumber, err)
		}
		for _, comment := range comments {
			if !strings.Contains(comment.GetBody(), commentMarker) {
				continue
			}
			_, _, err := c.gh.Issues.EditComment(ctx, c.owner, c.repo, comment.GetID(), &github.IssueComment{Body: &body})
			if err != nil {
				return fmt.Errorf("updating comment %d: %w", comment.GetID(), err)
			}
			c.logger.Info().Int("pr", prNumber).Int64("comment", comment.GetID()).Msg("updated summary comment")
			return nil
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	_, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, prNumber, &github.IssueComment{Body: &body})
	if err != nil {
		return fmt.Errorf("creating comment on PR #%d: %w", prNumber, err)
	}
	c.logger.Info().Int("pr", prNumber).Msg("posted summary comment")
	return nil
}
