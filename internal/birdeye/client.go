package birdeye

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnavailable reports that the API answered but carried no usable data.
var ErrUnavailable = errors.New("birdeye: data unavailable")

// Config holds client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Chain   string
	Timeout time.Duration
}

// Client calls the Birdeye public REST API. Calls are never retried; a
// failed call is reported once and the caller decides how it degrades.
type Client struct {
	http  *resty.Client
	chain string
}

func NewClient(cfg Config) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("accept", "application/json").
		SetHeader("x-chain", cfg.Chain).
		SetHeader("X-API-KEY", cfg.APIKey)

	return &Client{http: http, chain: cfg.Chain}
}

// HistoricalPrice returns the USD unit price of a token at a unix second.
func (c *Client) HistoricalPrice(ctx context.Context, token string, unixTime int64) (float64, error) {
	var out priceResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("address", token).
		SetQueryParam("unixtime", strconv.FormatInt(unixTime, 10)).
		SetResult(&out).
		Get("/defi/historical_price_unix")
	if err != nil {
		return 0, fmt.Errorf("historical price: %w", err)
	}
	if !resp.IsSuccess() {
		return 0, fmt.Errorf("historical price: status %d: %w", resp.StatusCode(), ErrUnavailable)
	}
	if !out.Success {
		return 0, fmt.Errorf("historical price: %w", ErrUnavailable)
	}
	return out.Data.Value, nil
}

// WalletBalance returns the wallet's total portfolio value in USD.
func (c *Client) WalletBalance(ctx context.Context, wallet string) (float64, error) {
	var out portfolioResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("wallet", wallet).
		SetResult(&out).
		Get("/v1/wallet/token_list")
	if err != nil {
		return 0, fmt.Errorf("wallet balance: %w", err)
	}
	if !resp.IsSuccess() {
		return 0, fmt.Errorf("wallet balance: status %d: %w", resp.StatusCode(), ErrUnavailable)
	}
	if !out.Success {
		return 0, fmt.Errorf("wallet balance: %w", ErrUnavailable)
	}
	return out.Data.TotalUSD, nil
}

// Transactions returns one page of wallet history, newest first. A non-empty
// before cursor resumes paging below that transaction hash.
func (c *Client) Transactions(ctx context.Context, wallet, before string, limit int) ([]Transaction, error) {
	var out txListResponse
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("wallet", wallet).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out)
	if before != "" {
		req.SetQueryParam("before", before)
	}

	resp, err := req.Get("/v1/wallet/tx_list")
	if err != nil {
		return nil, fmt.Errorf("tx list: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("tx list: status %d: %w", resp.StatusCode(), ErrUnavailable)
	}
	if !out.Success {
		return nil, fmt.Errorf("tx list: %w", ErrUnavailable)
	}
	return out.Data[c.chain], nil
}
