package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Client клиент сервиса уведомлений
// Доставка best-effort: ошибки логируются и не влияют на бизнес-операцию
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        Logger
	wg         sync.WaitGroup
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
// Пустой baseURL отключает отправку
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled true, если адрес сервиса уведомлений задан
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Send синхронно отправляет уведомление
func (c *Client) Send(ctx context.Context, n Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to encode notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// NotifyAsync отправляет уведомление в отдельной горутине со своим таймаутом
// Вызывается только после коммита транзакции
func (c *Client) NotifyAsync(n Notification) {
	if !c.Enabled() {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.Send(ctx, n); err != nil {
			c.log.Warn("Notification %s for appointment id=%d not delivered: %v", n.Event, n.AppointmentID, err)
			return
		}
		c.log.Info("Notification %s sent for appointment id=%d", n.Event, n.AppointmentID)
	}()
}

// Wait дожидается отправки всех уведомлений (используется при остановке сервера)
func (c *Client) Wait() {
	if c == nil {
		return
	}
	c.wg.Wait()
}
