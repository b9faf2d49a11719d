package client

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
	"sync/atomic"
	"time"

	"python101_web/pkg/logger"
	"python101_web/pkg/monitoring"
	"python101_web/pkg/tracing"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Client Python-101 后端 REST 接口的类型化封装，本身不持有任何会话状态
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    atomic.Int64
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
	}
	c.SetTimeout(timeout)

	logger.Log.Info("Python-101 API client initialized", zap.String("base_url", u.String()))
	return c, nil
}

// SetTimeout 配置热更新时调用
func (c *Client) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = 10 * time.Second
	}
	c.timeout.Store(int64(d))
}

func (c *Client) Timeout() time.Duration {
	return time.Duration(c.timeout.Load())
}

// APIError 后端返回的非 2xx 响应
type APIError struct {
	Status int
	Detail string
	Path   string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Request failed with status code %d", e.Status)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Detail 优先取后端给出的 detail，否则退回传输层错误信息
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if errors.Is(urlErr.Err, context.DeadlineExceeded) {
			return "请求超时"
		}
		return urlErr.Err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "请求超时"
	}
	return err.Error()
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Msg string `json:"msg"`
}

// parseDetail 兼容 FastAPI 的字符串 detail 与校验错误列表
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}
	var items []validationItem
	if err := json.Unmarshal(eb.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(eb.Detail)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do 发送 JSON 请求并把响应解码到 out（可为 nil）
func (c *Client) do(ctx context.Context, call, method, path string, query url.Values, in, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		monitoring.ObserveAPICall(call, start, err)
		if err != nil {
			logger.Log.Warn("API call failed",
				zap.String("call", call),
				zap.String("path", path),
				zap.Error(err))
		}
	}()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", call, err)
		}
		body = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	_, span := tracing.StartClientSpan(ctx, call, req)
	defer span.End()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Detail: parseDetail(data), Path: path}
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", call, err)
	}
	return nil
}
