// Package notify доставляет сообщения владельцу магазина через LINE Messaging API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pos/internal/domain"
	"github.com/vladislavdragonenkov/pos/internal/metrics"
)

const (
	defaultEndpoint = "https://api.line.me/v2/bot/message/push"
	requestTimeout  = 10 * time.Second
	maxErrorBody    = 512
)

type pushRequest struct {
	To       string        `json:"to"`
	Messages []pushMessage `json:"messages"`
}

type pushMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// LineClient отправляет текстовые push-сообщения одному получателю.
// Доставка однократная: ошибка возвращается вызывающему, ретраев нет.
type LineClient struct {
	endpoint    string
	accessToken string
	recipientID string
	httpClient  *http.Client
	logger      *log.Entry
	metrics     *metrics.POSMetrics
}

// Option настраивает LineClient.
type Option func(*LineClient)

// WithEndpoint подменяет URL push-эндпоинта (для тестов).
func WithEndpoint(endpoint string) Option {
	return func(c *LineClient) { c.endpoint = endpoint }
}

// WithHTTPClient подменяет HTTP-клиент.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *LineClient) { c.httpClient = httpClient }
}

// WithMetrics включает учёт попыток доставки.
func WithMetrics(m *metrics.POSMetrics) Option {
	return func(c *LineClient) { c.metrics = m }
}

// NewLineClient создаёт клиент LINE Messaging API.
func NewLineClient(accessToken, recipientID string, logger *log.Entry, options ...Option) (*LineClient, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, fmt.Errorf("line access token is required")
	}
	if strings.TrimSpace(recipientID) == "" {
		return nil, fmt.Errorf("line recipient id is required")
	}
	if logger == nil {
		logger = log.WithField("component", "line-notifier")
	}

	client := &LineClient{
		endpoint:    defaultEndpoint,
		accessToken: accessToken,
		recipientID: recipientID,
		httpClient:  &http.Client{Timeout: requestTimeout},
		logger:      logger,
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// Push отправляет одно текстовое сообщение получателю.
func (c *LineClient) Push(ctx context.Context, text string) error {
	body, err := json.Marshal(pushRequest{
		To:       c.recipientID,
		Messages: []pushMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("marshal push request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordPush("error")
		return fmt.Errorf("send line push: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.recordPush("error")
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("line push rejected: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	c.recordPush("ok")
	c.logger.Debug("line push delivered")
	return nil
}

func (c *LineClient) recordPush(result string) {
	if c.metrics != nil {
		c.metrics.RecordLinePush(result)
	}
}

// NopNotifier используется, когда LINE не сконфигурирован: сообщение уходит
// только в лог.
type NopNotifier struct {
	Logger *log.Entry
}

// Push пишет сообщение в лог и всегда успешен.
func (n NopNotifier) Push(_ context.Context, text string) error {
	if n.Logger != nil {
		n.Logger.WithField("text", text).Info("notification skipped: LINE is not configured")
	}
	return nil
}

var (
	_ domain.Notifier = (*LineClient)(nil)
	_ domain.Notifier = NopNotifier{}
)
