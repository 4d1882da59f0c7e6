package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

const apiVersion = "2022-11-28"

// GitHubConfig holds the connection settings for one repository.
type GitHubConfig struct {
	BaseURL  string
	Token    string
	Owner    string
	Repo     string
	PageSize int
	Timeout  time.Duration
}

// GitHub implements Tracker over the GitHub REST API. It never retries: a
// failed call is returned to the caller as is.
type GitHub struct {
	cfg      GitHubConfig
	http     *http.Client
	observer Observer
}

// NewGitHub creates a GitHub-backed Tracker.
func NewGitHub(cfg GitHubConfig, observer Observer) *GitHub {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.PageSize <= 0 || cfg.PageSize > 100 {
		cfg.PageSize = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GitHub{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type ghLabel struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

type ghIssue struct {
	Number      int             `json:"number"`
	Title       string          `json:"title"`
	Body        *string         `json:"body"`
	HTMLURL     string          `json:"html_url"`
	Labels      []ghLabel       `json:"labels"`
	PullRequest json.RawMessage `json:"pull_request,omitempty"`
}

func (i *ghIssue) toDomain() domain.Issue {
	out := domain.Issue{Number: i.Number, Title: i.Title, URL: i.HTMLURL}
	if i.Body != nil {
		out.Body = *i.Body
	}
	for _, l := range i.Labels {
		out.Labels = append(out.Labels, l.Name)
	}
	return out
}

type ghIssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

func (g *GitHub) repoURL(parts ...string) string {
	path := "/repos/" + url.PathEscape(g.cfg.Owner) + "/" + url.PathEscape(g.cfg.Repo)
	for _, p := range parts {
		path += "/" + url.PathEscape(p)
	}
	return g.cfg.BaseURL + path
}

func (g *GitHub) Issues(ctx context.Context) iter.Seq2[[]domain.Issue, error] {
	return func(yield func([]domain.Issue, error) bool) {
		next := fmt.Sprintf("%s?state=all&per_page=%d", g.repoURL("issues"), g.cfg.PageSize)
		for next != "" {
			var page []ghIssue
			header, err := g.do(ctx, "list_issues", http.MethodGet, next, nil, &page)
			if err != nil {
				yield(nil, fmt.Errorf("listing issues: %w", err))
				return
			}

			issues := make([]domain.Issue, 0, len(page))
			for i := range page {
				if len(page[i].PullRequest) > 0 && string(page[i].PullRequest) != "null" {
					continue
				}
				issues = append(issues, page[i].toDomain())
			}
			if !yield(issues, nil) {
				return
			}
			next = nextLink(header.Get("Link"))
		}
	}
}

func (g *GitHub) CreateIssue(ctx context.Context, in IssueInput) (*domain.Issue, error) {
	var out ghIssue
	req := ghIssueRequest{Title: in.Title, Body: in.Body, Labels: labelsOrEmpty(in.Labels)}
	if _, err := g.do(ctx, "create_issue", http.MethodPost, g.repoURL("issues"), req, &out); err != nil {
		return nil, fmt.Errorf("creating issue %q: %w", in.Title, err)
	}
	issue := out.toDomain()
	return &issue, nil
}

func (g *GitHub) UpdateIssue(ctx context.Context, number int, in IssueInput) (*domain.Issue, error) {
	var out ghIssue
	req := ghIssueRequest{Title: in.Title, Body: in.Body, Labels: labelsOrEmpty(in.Labels)}
	endpoint := g.repoURL("issues", fmt.Sprint(number))
	if _, err := g.do(ctx, "update_issue", http.MethodPatch, endpoint, req, &out); err != nil {
		return nil, fmt.Errorf("updating issue #%d: %w", number, err)
	}
	issue := out.toDomain()
	return &issue, nil
}

func (g *GitHub) GetLabel(ctx context.Context, name string) (*domain.Label, error) {
	var out ghLabel
	if _, err := g.do(ctx, "get_label", http.MethodGet, g.repoURL("labels", name), nil, &out); err != nil {
		return nil, fmt.Errorf("getting label %q: %w", name, err)
	}
	return &domain.Label{Name: out.Name, Color: out.Color, Description: out.Description}, nil
}

func (g *GitHub) CreateLabel(ctx context.Context, l domain.Label) (*domain.Label, error) {
	var out ghLabel
	req := ghLabel{Name: l.Name, Color: l.Color, Description: l.Description}
	if _, err := g.do(ctx, "create_label", http.MethodPost, g.repoURL("labels"), req, &out); err != nil {
		return nil, fmt.Errorf("creating label %q: %w", l.Name, err)
	}
	return &domain.Label{Name: out.Name, Color: out.Color, Description: out.Description}, nil
}

// do sends one request and decodes a JSON response into out.
func (g *GitHub) do(ctx context.Context, op, method, endpoint string, body, out any) (http.Header, error) {
	start := time.Now()
	header, err := g.send(ctx, method, endpoint, body, out)
	observe(g.observer, op, start, err)
	return header, err
}

func (g *GitHub) send(ctx context.Context, method, endpoint string, body, out any) (http.Header, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if g.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.Header, nil
}

// nextLink extracts the rel="next" target from an RFC 8288 Link header.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		target, params, ok := strings.Cut(strings.TrimSpace(part), ";")
		if !ok {
			continue
		}
		for _, p := range strings.Split(params, ";") {
			if strings.TrimSpace(p) == `rel="next"` {
				return strings.Trim(strings.TrimSpace(target), "<>")
			}
		}
	}
	return ""
}

// GitHub clears an issue's labels when the list is null; always send one.
func labelsOrEmpty(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}
