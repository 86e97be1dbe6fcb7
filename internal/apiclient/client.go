package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
)

// Client talks to the SpinHall HTTP API. It keeps the session cookie
// between calls and caches the balance query.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string

	balanceCache *expirable.LRU[string, decimal.Decimal]
}

// Config holds API client configuration
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	BalanceTTL time.Duration
}

// New creates a new API client
func New(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ttl := cfg.BalanceTTL
	if ttl == 0 {
		ttl = DefaultBalanceTTL
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		balanceCache: expirable.NewLRU[string, decimal.Decimal](1, nil, ttl),
	}, nil
}

// SetToken sets the bearer token sent with every request
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the API root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetBalance returns the caller's balance, served from cache when fresh
func (c *Client) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	if b, ok := c.balanceCache.Get(balanceCacheKey); ok {
		return b, nil
	}

	var resp BalanceResponse
	if err := c.doJSON(ctx, http.MethodGet, PathBalance, nil, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}
	c.balanceCache.Add(balanceCacheKey, resp.Balance)
	return resp.Balance, nil
}

// InvalidateBalance drops the cached balance query
func (c *Client) InvalidateBalance() {
	c.balanceCache.Remove(balanceCacheKey)
}

// PostTransaction applies a bet or win to the caller's balance
func (c *Client) PostTransaction(ctx context.Context, amount decimal.Decimal, action domain.TransactionType) (*BalanceResponse, error) {
	req := TransactionRequest{Amount: json.Number(amount.String()), Action: string(action)}

	var resp BalanceResponse
	if err := c.doJSON(ctx, http.MethodPost, PathBalance, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to post %s transaction: %w", action, err)
	}
	c.balanceCache.Add(balanceCacheKey, resp.Balance)
	return &resp, nil
}

// Withdraw requests a withdrawal from the caller's balance
func (c *Client) Withdraw(ctx context.Context, amount decimal.Decimal) (*BalanceResponse, error) {
	var resp BalanceResponse
	if err := c.doJSON(ctx, http.MethodPost, PathWithdraw, WithdrawRequest{Amount: json.Number(amount.String())}, &resp); err != nil {
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}
	c.balanceCache.Add(balanceCacheKey, resp.Balance)
	return &resp, nil
}

// Login authenticates and stores the returned token
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	req := LoginRequest{Username: username, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, PathLogin, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	c.SetToken(resp.Token)
	c.InvalidateBalance()
	return &resp, nil
}

// Logout ends the session and forgets the token
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, PathLogout, nil, nil)
	c.SetToken("")
	c.InvalidateBalance()
	if err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// Me returns the logged in admin user
func (c *Client) Me(ctx context.Context) (*UserResponse, error) {
	var resp UserResponse
	if err := c.doJSON(ctx, http.MethodGet, PathMe, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &resp, nil
}

// Promotions lists promotions
func (c *Client) Promotions(ctx context.Context) ([]domain.Promotion, error) {
	var resp []domain.Promotion
	if err := c.doJSON(ctx, http.MethodGet, PathPromotions, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	return resp, nil
}

// PromotionAvailability checks whether a promotion can be used now
func (c *Client) PromotionAvailability(ctx context.Context, id string) (*AvailabilityResponse, error) {
	var resp AvailabilityResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf(PathPromotionAvailabilityFmt, id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to check promotion %s: %w", id, err)
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, dest interface{}) error {
	log := logger.FromContext(ctx)
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(LogMsgRequestFailed, "method", method, "path", path, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	log.Debug(LogMsgRequestCompleted, "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
