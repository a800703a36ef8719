package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChatBotClientImpl - HTTP клиент API чат-бота магазина
type ChatBotClientImpl struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewChatBotClient создает новый HTTP клиент чат-бота
func NewChatBotClient(baseURL, token string, timeout time.Duration) *ChatBotClientImpl {
	return &ChatBotClientImpl{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// SendMessage отправляет текстовое сообщение в указанный чат
func (c *ChatBotClientImpl) SendMessage(ctx context.Context, chatID, text string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sendMessage", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chat bot API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
