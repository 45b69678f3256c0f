package fetchgh

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/jonwraymond/evalcorpus/corpus"
)

const perPage = 100

// Options configures a Client.
type Options struct {
	// Token authenticates search requests. Empty means anonymous access
	// with GitHub's lower rate limits.
	Token string

	// FetchReadmes pulls each repository's readme into the item body.
	// Off by default: it costs one extra request per repository.
	FetchReadmes bool

	// Logger receives fetch progress. Nil disables logging.
	Logger *zap.Logger
}

// Client fetches repositories and maps them to corpus items.
type Client struct {
	gh           *github.Client
	fetchReadmes bool
	log          *zap.Logger
}

// New builds a Client. With a token set, requests go through an oauth2
// static token source; otherwise the client is anonymous.
func New(ctx context.Context, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var gh *github.Client
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		gh = github.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		gh = github.NewClient(nil)
	}

	return &Client{gh: gh, fetchReadmes: opts.FetchReadmes, log: log}
}

// NewWithClient wraps an existing go-github client. Used by tests to
// point at a local server.
func NewWithClient(gh *github.Client, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{gh: gh, fetchReadmes: opts.FetchReadmes, log: log}
}

// SearchRepositories runs the repository search sorted by stars and
// returns up to max items. Pagination stops at max, the last page, or
// context cancellation, whichever comes first.
func (c *Client) SearchRepositories(ctx context.Context, query string, max int) ([]corpus.Item, error) {
	if max <= 0 {
		max = 200
	}

	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	items := make([]corpus.Item, 0, max)
	for {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		result, resp, err := c.gh.Search.Repositories(ctx, query, opts)
		if err != nil {
			return items, fmt.Errorf("search repositories page %d: %w", opts.Page, err)
		}

		for _, repo := range result.Repositories {
			items = append(items, c.itemFromRepo(ctx, repo))
			if len(items) >= max {
				break
			}
		}

		c.log.Debug("fetched search page",
			zap.Int("page", opts.Page),
			zap.Int("items", len(items)),
			zap.Int("total_available", result.GetTotal()),
		)

		if len(items) >= max || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.log.Info("repository search complete",
		zap.String("query", query),
		zap.Int("items", len(items)),
	)
	return items, nil
}

func (c *Client) itemFromRepo(ctx context.Context, repo *github.Repository) corpus.Item {
	item := corpus.Item{
		ID:          repo.GetFullName(),
		Category:    repo.GetOwner().GetLogin(),
		Description: repo.GetDescription(),
		Tags:        repo.Topics,
	}

	if c.fetchReadmes {
		body, err := c.readme(ctx, repo)
		if err != nil {
			c.log.Debug("readme unavailable",
				zap.String("repo", repo.GetFullName()), zap.Error(err))
		} else {
			item.Body = body
		}
	}
	return item
}

func (c *Client) readme(ctx context.Context, repo *github.Repository) (string, error) {
	content, _, err := c.gh.Repositories.GetReadme(ctx,
		repo.GetOwner().GetLogin(), repo.GetName(), nil)
	if err != nil {
		return "", err
	}
	return content.GetContent()
}

// WriteItems saves fetched items as the corpus JSON consumed by
// corpus.Load.
func WriteItems(path string, items []corpus.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		f.Close()
		return fmt.Errorf("encode corpus: %w", err)
	}
	return f.Close()
}
