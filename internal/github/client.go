package github

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/go-github/v68/github"
)

// Service is the minimal GitHub API surface the CI helpers use. The
// go-github client satisfies it through Client; tests substitute fakes.
type Service interface {
	ListWorkflowRunArtifacts(ctx context.Context, owner, repo string, runID int64) ([]*github.Artifact, error)
	DownloadArtifactURL(ctx context.Context, owner, repo string, artifactID int64) (*url.URL, error)
	ListComments(ctx context.Context, owner, repo string, number int) ([]*github.IssueComment, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) error
}

// Client adapts go-github to the Service interface.
type Client struct {
	gh *github.Client
}

// NewClient builds an authenticated client. An optional http.Client
// lets tests inject a stub transport.
func NewClient(token string, httpClient *http.Client) *Client {
	return &Client{gh: github.NewClient(httpClient).WithAuthToken(token)}
}

// NewClientFrom wraps an existing go-github client.
func NewClientFrom(gh *github.Client) *Client {
	return &Client{gh: gh}
}

func (c *Client) ListWorkflowRunArtifacts(ctx context.Context, owner, repo string, runID int64) ([]*github.Artifact, error) {
	var all []*github.Artifact
	opt := &github.ListOptions{PerPage: 100}
	for {
		artifacts, resp, err := c.gh.Actions.ListWorkflowRunArtifacts(ctx, owner, repo, runID, opt)
		if err != nil {
			return nil, err
		}
		all = append(all, artifacts.Artifacts...)
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return all, nil
}

func (c *Client) DownloadArtifactURL(ctx context.Context, owner, repo string, artifactID int64) (*url.URL, error) {
	u, _, err := c.gh.Actions.DownloadArtifact(ctx, owner, repo, artifactID, 4)
	return u, err
}

func (c *Client) ListComments(ctx context.Context, owner, repo string, number int) ([]*github.IssueComment, error) {
	var all []*github.IssueComment
	opt := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, owner, repo, number, opt)
		if err != nil {
			return nil, err
		}
		all = append(all, comments...)
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return all, nil
}

func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{Body: &body})
	return err
}

func (c *Client) UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	_, _, err := c.gh.Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{Body: &body})
	return err
}
