package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/lox/notionctl/internal/config"
	"github.com/lox/notionctl/internal/notion"
)

const (
	defaultBaseURL      = "https://api.notion.com/v1"
	defaultNotionAPIRev = "2022-06-28"
	maxPageSize         = 100
)

type Client struct {
	httpClient    *http.Client
	baseURL       string
	notionVersion string
	token         string
}

func NewClient(cfg config.APIConfig, token string) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("API token is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	notionVersion := strings.TrimSpace(cfg.NotionVersion)
	if notionVersion == "" {
		notionVersion = defaultNotionAPIRev
	}

	return &Client{
		httpClient:    &http.Client{Timeout: 20 * time.Second},
		baseURL:       baseURL,
		notionVersion: notionVersion,
		token:         token,
	}, nil
}

// Search finds pages or databases shared with the integration. objectType
// is "page", "database" or empty for both. limit <= 0 fetches every result.
func (c *Client) Search(ctx context.Context, query, objectType string, limit int) ([]notion.Object, error) {
	return c.paginate(ctx, limit, func(cursor string, pageSize int) ([]byte, error) {
		payload := map[string]any{"page_size": pageSize}
		if q := strings.TrimSpace(query); q != "" {
			payload["query"] = q
		}
		if objectType != "" {
			payload["filter"] = map[string]any{"property": "object", "value": objectType}
		}
		if cursor != "" {
			payload["start_cursor"] = cursor
		}
		return c.doJSON(ctx, http.MethodPost, "/search", payload)
	})
}

func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (notion.Object, error) {
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, fmt.Errorf("database ID is required")
	}
	return c.retrieve(ctx, "/databases/"+databaseID)
}

func (c *Client) RetrievePage(ctx context.Context, pageID string) (notion.Object, error) {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return nil, fmt.Errorf("page ID is required")
	}
	return c.retrieve(ctx, "/pages/"+pageID)
}

// QueryDatabase returns database entries in the order the API sorts them.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, limit int) ([]notion.Object, error) {
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, fmt.Errorf("database ID is required")
	}
	return c.paginate(ctx, limit, func(cursor string, pageSize int) ([]byte, error) {
		payload := map[string]any{"page_size": pageSize}
		if cursor != "" {
			payload["start_cursor"] = cursor
		}
		return c.doJSON(ctx, http.MethodPost, "/databases/"+databaseID+"/query", payload)
	})
}

// BlockTree fetches the children of blockID, descending into nested blocks up
// to maxDepth levels. Nested blocks are attached under "children".
// maxDepth <= 0 fetches the whole tree.
func (c *Client) BlockTree(ctx context.Context, blockID string, maxDepth int) ([]notion.Object, error) {
	blockID = strings.TrimSpace(blockID)
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	return c.blockTree(ctx, blockID, 1, maxDepth)
}

func (c *Client) blockTree(ctx context.Context, blockID string, depth, maxDepth int) ([]notion.Object, error) {
	blocks, err := c.paginate(ctx, 0, func(cursor string, pageSize int) ([]byte, error) {
		query := url.Values{}
		query.Set("page_size", fmt.Sprint(pageSize))
		if cursor != "" {
			query.Set("start_cursor", cursor)
		}
		return c.doJSON(ctx, http.MethodGet, "/blocks/"+blockID+"/children?"+query.Encode(), nil)
	})
	if err != nil {
		return nil, err
	}

	if maxDepth > 0 && depth >= maxDepth {
		return blocks, nil
	}
	for _, block := range blocks {
		if !block.Bool("has_children") {
			continue
		}
		children, err := c.blockTree(ctx, block.Str("id"), depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		block["children"] = children
	}
	return blocks, nil
}

// ListComments returns the unresolved comments on a page or block.
func (c *Client) ListComments(ctx context.Context, blockID string, limit int) ([]notion.Object, error) {
	blockID = strings.TrimSpace(blockID)
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	return c.paginate(ctx, limit, func(cursor string, pageSize int) ([]byte, error) {
		query := url.Values{}
		query.Set("block_id", blockID)
		query.Set("page_size", fmt.Sprint(pageSize))
		if cursor != "" {
			query.Set("start_cursor", cursor)
		}
		return c.doJSON(ctx, http.MethodGet, "/comments?"+query.Encode(), nil)
	})
}

// VerifyToken checks the token against the API and returns the bot user.
func (c *Client) VerifyToken(ctx context.Context) (notion.Object, error) {
	return c.retrieve(ctx, "/users/me")
}

func (c *Client) retrieve(ctx context.Context, path string) (notion.Object, error) {
	body, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	obj, err := notion.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("parse API response for GET %s: %w", path, err)
	}
	return obj, nil
}

type pageFetcher func(cursor string, pageSize int) ([]byte, error)

func (c *Client) paginate(ctx context.Context, limit int, fetch pageFetcher) ([]notion.Object, error) {
	results := []notion.Object{}
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageSize := maxPageSize
		if limit > 0 && limit-len(results) < pageSize {
			pageSize = limit - len(results)
		}

		body, err := fetch(cursor, pageSize)
		if err != nil {
			return nil, err
		}
		page, err := notion.DecodeList(body, "results")
		if err != nil {
			return nil, fmt.Errorf("parse results: %w", err)
		}
		results = append(results, page...)

		if limit > 0 && len(results) >= limit {
			return results[:limit], nil
		}

		next, err := nextCursor(body)
		if err != nil {
			return nil, err
		}
		if next == "" {
			return results, nil
		}
		cursor = next
	}
}

// nextCursor returns the cursor for the following page, or "" on the last one.
func nextCursor(body []byte) (string, error) {
	hasMore, err := jsonparser.GetBoolean(body, "has_more")
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return "", nil
		}
		return "", fmt.Errorf("parse has_more: %w", err)
	}
	if !hasMore {
		return "", nil
	}
	raw, dataType, _, err := jsonparser.Get(body, "next_cursor")
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return "", nil
		}
		return "", fmt.Errorf("parse next_cursor: %w", err)
	}
	if dataType != jsonparser.String {
		return "", nil
	}
	cursor, err := jsonparser.ParseString(raw)
	if err != nil {
		return "", fmt.Errorf("parse next_cursor: %w", err)
	}
	return cursor, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var bodyReader io.Reader
	contentType := ""
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.doRequest(ctx, method, path, bodyReader, contentType)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("authorization", "Bearer "+c.token)
	req.Header.Set("notion-version", c.notionVersion)
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		message := strings.TrimSpace(string(respBody))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		} else if apiMessage, err := jsonparser.GetString(respBody, "message"); err == nil && strings.TrimSpace(apiMessage) != "" {
			message = strings.TrimSpace(apiMessage)
		}
		return nil, &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	return respBody, nil
}

// Error is a non-2xx API response.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("API %s %s failed (%d): %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
