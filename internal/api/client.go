package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rrezende/hq-manager-cli/pkg/models"
)

// RequestError is a non-2xx response from the backend. Detail carries the
// "detail" field from the error body when present.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// NetworkError is a transport failure (DNS, connection refused, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("server connection error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// call performs one JSON round trip. A nil out discards the response body.
func (c *Client) call(ctx context.Context, method, endpoint string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Detail string `json:"detail"`
		}
		json.Unmarshal(data, &errBody)
		return &RequestError{Status: resp.StatusCode, Detail: errBody.Detail}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) ListSeries(ctx context.Context, search string, page, perPage int) (*models.SeriesListResponse, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	endpoint := "/series"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var resp models.SeriesListResponse
	if err := c.call(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetSeries(ctx context.Context, seriesID int) (*models.Series, error) {
	var s models.Series
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/series/%d", seriesID), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) CreateSeries(ctx context.Context, req models.SeriesRequest) (*models.Series, error) {
	var s models.Series
	if err := c.call(ctx, http.MethodPost, "/series", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSeries(ctx context.Context, seriesID int, req models.SeriesRequest) (*models.Series, error) {
	var s models.Series
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/series/%d", seriesID), req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) DeleteSeries(ctx context.Context, seriesID int) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/series/%d", seriesID), nil, nil)
}

func (c *Client) ListIssues(ctx context.Context, seriesID int) ([]models.Issue, error) {
	var issues []models.Issue
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/series/%d/issues", seriesID), nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *Client) CreateIssue(ctx context.Context, seriesID int, req models.IssueCreateRequest) (*models.Issue, error) {
	var issue models.Issue
	if err := c.call(ctx, http.MethodPost, fmt.Sprintf("/series/%d/issues", seriesID), req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) UpdateIssueRead(ctx context.Context, seriesID, issueID int, isRead bool) (*models.Issue, error) {
	var issue models.Issue
	endpoint := fmt.Sprintf("/series/%d/issues/%d", seriesID, issueID)
	if err := c.call(ctx, http.MethodPatch, endpoint, models.IssueUpdateRequest{IsRead: isRead}, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *Client) DeleteIssue(ctx context.Context, seriesID, issueID int) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/series/%d/issues/%d", seriesID, issueID), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.call(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) RecalculateAll(ctx context.Context) (*models.RecalculateAllResult, error) {
	var result models.RecalculateAllResult
	if err := c.call(ctx, http.MethodPost, "/recalculate-all", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportExcel asks the backend to generate the spreadsheet and returns the
// raw xlsx bytes.
func (c *Client) ExportExcel(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/export-excel", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Detail string `json:"detail"`
		}
		json.Unmarshal(data, &errBody)
		return nil, &RequestError{Status: resp.StatusCode, Detail: errBody.Detail}
	}
	return data, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/health", nil, nil)
}
