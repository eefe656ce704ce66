package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с погодным сервисом
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента погодного сервиса
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Assess запрашивает оценку условий для локации на момент времени
func (c *Client) Assess(ctx context.Context, location string, at time.Time) (*Assessment, error) {
	url := fmt.Sprintf("%s/v1/marine/assess?location=%s&at=%s", c.baseURL, location, at.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid location or timestamp", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var assessment Assessment
	if err := json.NewDecoder(resp.Body).Decode(&assessment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &assessment, nil
}

// AssessWithGracefulDegradation запрашивает оценку условий с graceful degradation
// При недоступности сервиса возвращает ErrServiceDegraded: weather hold
// остается доступен капитану и без автоматической оценки
func (c *Client) AssessWithGracefulDegradation(ctx context.Context, location string, at time.Time) (*Assessment, error) {
	c.log.Info("Assessing weather for location=%s at=%s", location, at.Format(time.RFC3339))

	assessment, err := c.Assess(ctx, location, at)
	if err != nil {
		// Для всех ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation
		c.log.Error("Weather service unavailable, applying graceful degradation for location=%s: %v", location, err)
		return nil, fmt.Errorf("%w: location=%s, error=%v", ErrServiceDegraded, location, err)
	}

	c.log.Info("Weather assessment for location=%s: condition=%s", location, assessment.Condition)
	return assessment, nil
}
