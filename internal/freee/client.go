package freee

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ma6uchi/freee-api-export/internal/domain/credential"
	"github.com/ma6uchi/freee-api-export/internal/domain/project"
	"github.com/ma6uchi/freee-api-export/internal/domain/workload"
)

const (
	// DefaultBaseURL is freee's pm API root.
	DefaultBaseURL = "https://api.freee.co.jp"
	// DefaultPageLimit is the page size requested from list endpoints.
	DefaultPageLimit = 100

	projectsPath  = "/pm/projects"
	workloadsPath = "/pm/workloads"
)

// AuthCaller issues authenticated requests, refreshing the credential and
// retrying once on 401. Implemented by credential.Guardian.
type AuthCaller interface {
	CallWithAuth(ctx context.Context, fn credential.RequestFunc) (*http.Response, error)
}

// Config configures a Client.
type Config struct {
	BaseURL    string
	Auth       AuthCaller
	HTTPClient *http.Client
	PageLimit  int
	// ThrottleInterval, when positive, is slept between page fetches.
	ThrottleInterval time.Duration
	Logger           *slog.Logger
}

// Client fetches projects and workload entries from the freee pm API,
// paginating eagerly until each listing is fully materialized.
type Client struct {
	baseURL    string
	auth       AuthCaller
	httpClient *http.Client
	pageLimit  int
	throttle   time.Duration
	logger     *slog.Logger
}

// NewClient creates a client with defaults filled in.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = DefaultPageLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		auth:       cfg.Auth,
		httpClient: cfg.HTTPClient,
		pageLimit:  cfg.PageLimit,
		throttle:   cfg.ThrottleInterval,
		logger:     cfg.Logger,
	}
}

// FetchProjects returns every project for the company.
func (c *Client) FetchProjects(ctx context.Context, companyID int64) ([]project.Project, error) {
	if companyID == 0 {
		return nil, ErrMissingCompanyID
	}

	params := url.Values{}
	params.Set("company_id", strconv.FormatInt(companyID, 10))

	raw, err := fetchAll(ctx, c, projectsPath, params, func(body []byte) ([]apiProject, int, error) {
		var page projectsPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, 0, fmt.Errorf("decoding projects page: %w", err)
		}
		return page.Projects, page.Meta.TotalCount, nil
	})
	if err != nil {
		return nil, err
	}

	projects := make([]project.Project, 0, len(raw))
	for _, p := range raw {
		projects = append(projects, p.toDomain())
	}
	return projects, nil
}

// FetchWorkloads returns every workload entry for the company in the given
// year-month ("2006-01"). employeesScope defaults to "all".
func (c *Client) FetchWorkloads(ctx context.Context, companyID int64, yearMonth, employeesScope string) ([]workload.Entry, error) {
	if companyID == 0 {
		return nil, ErrMissingCompanyID
	}
	if strings.TrimSpace(yearMonth) == "" {
		return nil, ErrMissingYearMonth
	}
	if strings.TrimSpace(employeesScope) == "" {
		employeesScope = "all"
	}

	params := url.Values{}
	params.Set("company_id", strconv.FormatInt(companyID, 10))
	params.Set("year_month", yearMonth)
	params.Set("employees_scope", employeesScope)

	raw, err := fetchAll(ctx, c, workloadsPath, params, func(body []byte) ([]apiWorkload, int, error) {
		var page workloadsPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, 0, fmt.Errorf("decoding workloads page: %w", err)
		}
		return page.Workloads, page.Meta.TotalCount, nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]workload.Entry, 0, len(raw))
	for _, w := range raw {
		entries = append(entries, w.toDomain())
	}
	return entries, nil
}

// fetchAll accumulates every page of a list endpoint. total_count is
// captured from the first page; the offset advances by the number of records
// actually returned, not the requested limit, which is the guard against
// looping forever when the API reports inconsistent counts or returns short
// pages. Any transport or decode failure aborts the whole fetch.
func fetchAll[T any](ctx context.Context, c *Client, path string, params url.Values, decode func([]byte) ([]T, int, error)) ([]T, error) {
	var all []T
	offset := 0
	totalCount := -1
	first := true

	for {
		if !first && c.throttle > 0 {
			select {
			case <-time.After(c.throttle):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := c.getPage(ctx, path, params, offset)
		if err != nil {
			return nil, err
		}

		records, total, err := decode(body)
		if err != nil {
			return nil, err
		}

		if first {
			totalCount = total
			c.logger.Debug("first page fetched", "path", path, "total_count", totalCount)
			if totalCount == 0 {
				return []T{}, nil
			}
			first = false
		}

		all = append(all, records...)
		offset += len(records)

		if len(records) < c.pageLimit || offset >= totalCount {
			return all, nil
		}
	}
}

func (c *Client) getPage(ctx context.Context, path string, params url.Values, offset int) ([]byte, error) {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("limit", strconv.Itoa(c.pageLimit))
	q.Set("offset", strconv.Itoa(offset))

	resp, err := c.auth.CallWithAuth(ctx, func(ctx context.Context, accessToken string) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Content-Type", "application/json")
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s at offset %d: %w", path, offset, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d: %s",
			ErrUnexpectedStatus, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
