package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client talks to a mirai-api-http endpoint. It owns the session lifecycle
// and all outbound messages.
type Client struct {
	BaseURL   string
	VerifyKey string
	BotQQ     int64
	HTTP      *http.Client

	sessionKey string
}

// NewClient creates a gateway client.
func NewClient(baseURL, verifyKey string, botQQ int64) *Client {
	return &Client{
		BaseURL:   baseURL,
		VerifyKey: verifyKey,
		BotQQ:     botQQ,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Connect verifies the key and binds the session to the bot account.
func (c *Client) Connect() error {
	var verifyResp struct {
		Code    int    `json:"code"`
		Session string `json:"session"`
	}
	if err := c.post("/verify", map[string]any{"verifyKey": c.VerifyKey}, &verifyResp); err != nil {
		return fmt.Errorf("verify session: %w", err)
	}
	if verifyResp.Code != 0 {
		return fmt.Errorf("verify session: mirai code %d", verifyResp.Code)
	}
	c.sessionKey = verifyResp.Session

	var bindResp struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	payload := map[string]any{"sessionKey": c.sessionKey, "qq": c.BotQQ}
	if err := c.post("/bind", payload, &bindResp); err != nil {
		return fmt.Errorf("bind session: %w", err)
	}
	if bindResp.Code != 0 {
		return fmt.Errorf("bind session: mirai code %d (%s)", bindResp.Code, bindResp.Msg)
	}

	log.Printf("[INFO] mirai session bound for %d", c.BotQQ)
	return nil
}

// SendGroupMessage posts a message chain to one group.
func (c *Client) SendGroupMessage(group int64, chain []Segment) error {
	var resp struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	payload := map[string]any{
		"sessionKey":   c.sessionKey,
		"target":       group,
		"messageChain": chain,
	}
	if err := c.post("/sendGroupMessage", payload, &resp); err != nil {
		return fmt.Errorf("send group message: %w", err)
	}
	if resp.Code != 0 {
		return fmt.Errorf("send group message: mirai code %d (%s)", resp.Code, resp.Msg)
	}
	return nil
}

// SendWithRetry sends a message chain with exponential backoff retry.
func (c *Client) SendWithRetry(ctx context.Context, group int64, chain []Segment, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := c.SendGroupMessage(group, chain); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] group %d send failed (attempt %d/%d): %v, retrying in %v",
				group, i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// Broadcast sends the same text to every listed group.
func (c *Client) Broadcast(ctx context.Context, text string, groups []int64) {
	chain := []Segment{Plain(text)}
	for _, group := range groups {
		if err := c.SendWithRetry(ctx, group, chain, 3); err != nil {
			log.Printf("[ERROR] broadcast to group %d: %v", group, err)
		}
	}
}

func (c *Client) post(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := c.HTTP.Post(c.BaseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mirai API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
