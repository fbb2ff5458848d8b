// Package rewardapi talks to the remote reward endpoints: one login
// exchange and one red-bag claim call.
package rewardapi

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

	"github.com/avelezco/redbag-claimer/internal/domain"
	"github.com/avelezco/redbag-claimer/internal/ports"
)

const (
	loginPath = "userlogin/"
	claimPath = "getRedBag/"

	// remoteSuccess is the body-level status code the API uses for
	// accepted requests.
	remoteSuccess = "0"

	defaultLang         = "en"
	defaultLoginTimeout = 10 * time.Second
	defaultClaimTimeout = 15 * time.Second

	maxResponseBytes = 1 << 20
)

type Client struct {
	BaseURL      string
	HTTPClient   *http.Client
	LoginTimeout time.Duration
	ClaimTimeout time.Duration
	Lang         string
}

var _ ports.RewardGateway = (*Client)(nil)

type loginRequest struct {
	UserName string `json:"userName"`
	Pwd      string `json:"pwd"`
}

type memberInfo struct {
	MemberID   string `json:"memberID"`
	SessionKey string `json:"skey"`
}

type loginResponse struct {
	Code    string      `json:"code"`
	Msg     string      `json:"msg"`
	MemInfo *memberInfo `json:"memInfo"`
}

type claimRequest struct {
	BagKey     string `json:"bagKey"`
	Lang       string `json:"lang"`
	MemberID   string `json:"memberID"`
	SessionKey string `json:"skey"`
}

type claimResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

func (c *Client) Login(ctx context.Context, userName, passwordDigest string) (domain.Credentials, error) {
	endpoint, err := buildAPIURL(c.BaseURL, loginPath)
	if err != nil {
		return domain.Credentials{}, err
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.loginTimeout())
	defer cancel()

	resp, err := c.postJSON(requestCtx, endpoint, loginRequest{UserName: userName, Pwd: passwordDigest}, "")
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("login request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var payload loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return domain.Credentials{}, fmt.Errorf("decode login response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.Credentials{}, fmt.Errorf("login request: %s", remoteMessage(resp.StatusCode, payload.Code, payload.Msg))
	}

	if payload.Code != remoteSuccess {
		return domain.Credentials{}, fmt.Errorf("login rejected: %s", remoteMessage(resp.StatusCode, payload.Code, payload.Msg))
	}
	if payload.MemInfo == nil || payload.MemInfo.MemberID == "" || payload.MemInfo.SessionKey == "" {
		return domain.Credentials{}, errors.New("login response missing memberID or skey")
	}

	return domain.Credentials{
		MemberID:   payload.MemInfo.MemberID,
		SessionKey: payload.MemInfo.SessionKey,
	}, nil
}

func (c *Client) Claim(ctx context.Context, code string, creds domain.Credentials) (string, error) {
	endpoint, err := buildAPIURL(c.BaseURL, claimPath)
	if err != nil {
		return "", err
	}

	body := claimRequest{
		BagKey:     code,
		Lang:       c.lang(),
		MemberID:   creds.MemberID,
		SessionKey: creds.SessionKey,
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.claimTimeout())
	defer cancel()

	resp, err := c.postJSON(requestCtx, endpoint, body, creds.SessionKey)
	if err != nil {
		return "", fmt.Errorf("claim request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", domain.ErrAuthExpired
	}

	var payload claimResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode claim response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("claim request: %s", remoteMessage(resp.StatusCode, payload.Code, payload.Msg))
	}

	if payload.Code != remoteSuccess {
		return "", &domain.RejectionError{Code: payload.Code, Message: payload.Msg}
	}

	if payload.Msg == "" {
		return "Claimed successfully", nil
	}
	return payload.Msg, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any, bearer string) (*http.Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return c.httpClient().Do(req)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) loginTimeout() time.Duration {
	if c.LoginTimeout > 0 {
		return c.LoginTimeout
	}
	return defaultLoginTimeout
}

func (c *Client) claimTimeout() time.Duration {
	if c.ClaimTimeout > 0 {
		return c.ClaimTimeout
	}
	return defaultClaimTimeout
}

func (c *Client) lang() string {
	if c.Lang != "" {
		return c.Lang
	}
	return defaultLang
}

func remoteMessage(statusCode int, code, msg string) string {
	if msg != "" {
		return msg
	}
	if code != "" {
		return fmt.Sprintf("remote answered with code %s", code)
	}
	return fmt.Sprintf("status %d", statusCode)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
