package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// MessageHandler turns an incoming group message into a reply chain.
// An empty chain means no reply.
type MessageHandler func(msg Incoming) []Segment

// miraiEvent is one entry from fetchMessage.
type miraiEvent struct {
	Type         string `json:"type"`
	MessageChain []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"messageChain"`
	Sender struct {
		ID    int64 `json:"id"`
		Group struct {
			ID int64 `json:"id"`
		} `json:"group"`
	} `json:"sender"`
}

// Poll fetches queued messages in a loop and dispatches group messages to
// the handler. Blocks until ctx is cancelled.
func (c *Client) Poll(ctx context.Context, handler MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] mirai polling stopped")
			return
		default:
		}

		events, err := c.fetchMessages(ctx, 10)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] fetch messages: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		if len(events) == 0 {
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, ev := range events {
			if ev.Type != "GroupMessage" {
				continue
			}
			msg := Incoming{
				Text:     chainText(ev),
				SenderID: ev.Sender.ID,
				GroupID:  ev.Sender.Group.ID,
			}
			if msg.Text == "" || msg.GroupID == 0 {
				continue
			}
			reply := handler(msg)
			if len(reply) == 0 {
				continue
			}
			if err := c.SendGroupMessage(msg.GroupID, reply); err != nil {
				log.Printf("[ERROR] send reply to group %d: %v", msg.GroupID, err)
			}
		}
	}
}

func (c *Client) fetchMessages(ctx context.Context, count int) ([]miraiEvent, error) {
	apiURL := fmt.Sprintf("%s/fetchMessage?sessionKey=%s&count=%d", c.BaseURL, c.sessionKey, count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create fetch request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read fetch response: %w", err)
	}

	var result struct {
		Code int          `json:"code"`
		Data []miraiEvent `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode fetch response: %w", err)
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("mirai code %d", result.Code)
	}
	return result.Data, nil
}

// chainText concatenates the plain segments of a message chain, trimmed.
func chainText(ev miraiEvent) string {
	var b strings.Builder
	for _, seg := range ev.MessageChain {
		if seg.Type == "Plain" {
			b.WriteString(seg.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
