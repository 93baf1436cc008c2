// Package pfclient is an HTTP client for the portfolio backend API.
package pfclient

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

	"github.com/stellar/portfolio-backend/internal/utils"
)

const (
	apiPrefix       = "/api/1"
	usersPath       = apiPrefix + "/users"
	tradesPath      = apiPrefix + "/trades"
	assetsPath      = apiPrefix + "/assets"
	tasksPath       = apiPrefix + "/tasks"
	exchangesPath   = apiPrefix + "/exchanges"
	blockchainsPath = apiPrefix + "/balances/blockchains"
)

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    baseURL,
	}
}

func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return err
	}
	if resp.Status != "healthy" {
		return fmt.Errorf("server reported status %q", resp.Status)
	}
	return nil
}

func (c *Client) GetAsset(ctx context.Context, identifier string) (*AssetData, error) {
	var asset AssetData
	if err := c.do(ctx, http.MethodGet, assetsPath+"/"+url.PathEscape(identifier), nil, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *Client) GetEthTokens(ctx context.Context) ([]EthToken, error) {
	var tokens []EthToken
	if err := c.do(ctx, http.MethodGet, assetsPath+"/ethereum_tokens", nil, nil, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// ListUsers returns the status of every user keyed by name.
func (c *Client) ListUsers(ctx context.Context) (map[string]string, error) {
	users := map[string]string{}
	if err := c.do(ctx, http.MethodGet, usersPath, nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, req NewUserRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, usersPath, nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, name, password string) (*User, error) {
	var user User
	req := UserActionRequest{Name: name, Password: password, Action: "login"}
	if err := c.do(ctx, http.MethodPatch, usersPath+"/"+url.PathEscape(name), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context, name, password string) error {
	req := UserActionRequest{Name: name, Password: password, Action: "logout"}
	return c.do(ctx, http.MethodPatch, usersPath+"/"+url.PathEscape(name), nil, req, nil)
}

func (c *Client) SetPremium(ctx context.Context, name, password, apiKey, apiSecret string) error {
	req := UserActionRequest{Name: name, Password: password, PremiumAPIKey: apiKey, PremiumAPISecret: apiSecret}
	return c.do(ctx, http.MethodPatch, usersPath+"/"+url.PathEscape(name), nil, req, nil)
}

func (c *Client) QueryTrades(ctx context.Context, query TradesQuery) ([]Trade, error) {
	params := url.Values{}
	if query.FromTimestamp != 0 {
		params.Set("from_timestamp", strconv.FormatInt(query.FromTimestamp, 10))
	}
	if query.ToTimestamp != 0 {
		params.Set("to_timestamp", strconv.FormatInt(query.ToTimestamp, 10))
	}
	if query.Location != "" {
		params.Set("location", query.Location)
	}

	var trades []Trade
	if err := c.do(ctx, http.MethodGet, tradesPath, params, nil, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func (c *Client) AddTrade(ctx context.Context, trade Trade) (*Trade, error) {
	trade.TradeID = ""
	var added Trade
	if err := c.do(ctx, http.MethodPut, tradesPath, nil, trade, &added); err != nil {
		return nil, err
	}
	return &added, nil
}

func (c *Client) EditTrade(ctx context.Context, trade Trade) (*Trade, error) {
	var edited Trade
	if err := c.do(ctx, http.MethodPatch, tradesPath, nil, trade, &edited); err != nil {
		return nil, err
	}
	return &edited, nil
}

func (c *Client) DeleteTrade(ctx context.Context, tradeID string) error {
	return c.do(ctx, http.MethodDelete, tradesPath, nil, map[string]string{"trade_id": tradeID}, nil)
}

// ListConnectedExchanges returns the sorted names of the exchanges the server is connected to.
func (c *Client) ListConnectedExchanges(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := c.do(ctx, http.MethodGet, exchangesPath, nil, nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *Client) QueryExchangeBalances(ctx context.Context, name string) (map[string]Balance, error) {
	var balances map[string]Balance
	if err := c.do(ctx, http.MethodGet, exchangesPath+"/balances/"+url.PathEscape(name), nil, nil, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// QueryBlockchainBalances queries the given chain, or every chain when blockchain is empty.
func (c *Client) QueryBlockchainBalances(ctx context.Context, blockchain string) (*BlockchainBalances, error) {
	path := blockchainsPath
	if blockchain != "" {
		path += "/" + url.PathEscape(blockchain)
	}
	var balances BlockchainBalances
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &balances); err != nil {
		return nil, err
	}
	return &balances, nil
}

// QueryExchangeBalancesAsync starts the query as a background task and returns its ID.
func (c *Client) QueryExchangeBalancesAsync(ctx context.Context, name string) (int64, error) {
	var resp struct {
		TaskID int64 `json:"task_id"`
	}
	params := url.Values{"async_query": []string{"true"}}
	if err := c.do(ctx, http.MethodGet, exchangesPath+"/balances/"+url.PathEscape(name), params, nil, &resp); err != nil {
		return 0, err
	}
	return resp.TaskID, nil
}

func (c *Client) GetTaskResult(ctx context.Context, taskID int64) (*TaskResult, error) {
	var result TaskResult
	if err := c.do(ctx, http.MethodGet, tasksPath+"/"+strconv.FormatInt(taskID, 10), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, bodyObj, respObj any) error {
	resp, err := c.request(ctx, method, path, params, bodyObj)
	if err != nil {
		return fmt.Errorf("calling client request: %w", err)
	}
	defer utils.DeferredClose(ctx, resp.Body, "closing response body")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if c.isHTTPError(resp) {
		return parseAPIError(resp.StatusCode, respBody)
	}
	if respObj == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, respObj); err != nil {
		return fmt.Errorf("unmarshalling response body: %w", err)
	}
	return nil
}

func (c *Client) request(ctx context.Context, method, path string, params url.Values, bodyObj any) (*http.Response, error) {
	u, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("joining path: %w", err)
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if bodyObj != nil {
		reqBody, err := json.Marshal(bodyObj)
		if err != nil {
			return nil, fmt.Errorf("marshalling request body: %w", err)
		}
		body = bytes.NewReader(reqBody)
	}

	request, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if bodyObj != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	return resp, nil
}

func (c *Client) isHTTPError(resp *http.Response) bool {
	return resp.StatusCode >= 400
}

func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = string(body)
	}
	apiErr.StatusCode = statusCode
	return apiErr
}
