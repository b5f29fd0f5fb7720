package youtubeclient

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube/domain"
	"github.com/titlelab/title-rotator-api/internal/config"
	ownDomain "github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/pkg/metrics"
)

// Client fala com a Data API e a Analytics API do YouTube em nome de um
// canal. Toda chamada passa pelo tracker de quota e pelo retry com backoff
// exponencial para falhas transientes.
type Client interface {
	GetVideo(ctx context.Context, channelID, videoID string) (*youtubedomain.VideoResource, error)
	UpdateVideo(ctx context.Context, channelID string, video *youtubedomain.VideoResource) error
	QueryVideoMetrics(ctx context.Context, channelID, videoID string, since time.Time) (*ownDomain.VideoMetrics, error)
}

type youtubeClient struct {
	cfg         *config.Config
	credentials *CredentialManager
	quota       *QuotaTracker
	httpClient  *http.Client
}

func NewClient(cfg *config.Config, credentials *CredentialManager, quota *QuotaTracker) Client {
	return &youtubeClient{
		cfg:         cfg,
		credentials: credentials,
		quota:       quota,
		httpClient:  &http.Client{Timeout: cfg.YouTube.RequestTimeout()},
	}
}

// do executa uma chamada autenticada contra a API. O custo de quota é
// debitado uma única vez antes da primeira tentativa. Um 401 dispara uma
// renovação de token e uma repetição imediata, uma única vez. Status 429 e
// 5xx entram no ciclo de retry com backoff.
func (c *youtubeClient) do(ctx context.Context, channelID, operation string, quotaCost int, build func(token string) (*http.Request, error)) ([]byte, error) {
	if err := c.quota.Charge(quotaCost); err != nil {
		metrics.PlatformCallsTotal.WithLabelValues(operation, "quota_exceeded").Inc()
		return nil, err
	}

	refreshed := false
	var lastErr error

	for attempt := 0; attempt < c.cfg.YouTube.RetryMaxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, c.backoff(attempt)); err != nil {
				return nil, err
			}
		}

		token, err := c.credentials.AccessToken(ctx, channelID)
		if err != nil {
			metrics.PlatformCallsTotal.WithLabelValues(operation, "auth_error").Inc()
			return nil, err
		}

		req, err := build(token)
		if err != nil {
			return nil, errors.Wrap(err, "erro montando requisição para a API")
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			logrus.WithError(err).WithFields(logrus.Fields{
				"operation": operation,
				"attempt":   attempt + 1,
			}).Warn("youtube: request failed, will retry")
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
			metrics.PlatformCallsTotal.WithLabelValues(operation, "ok").Inc()
			return body, nil
		}

		apiErr := parseAPIError(body)

		switch {
		case resp.StatusCode == http.StatusUnauthorized || (apiErr != nil && apiErr.IsAuthError()):
			if refreshed {
				metrics.PlatformCallsTotal.WithLabelValues(operation, "auth_error").Inc()
				return nil, errors.Wrapf(ownDomain.ErrReauthorizationRequired, "token rejeitado mesmo após renovação na operação %s", operation)
			}

			refreshed = true
			if _, err := c.credentials.Refresh(ctx, channelID); err != nil {
				metrics.PlatformCallsTotal.WithLabelValues(operation, "auth_error").Inc()
				return nil, err
			}

			// repetição imediata com o token novo, sem consumir tentativa
			attempt--
			continue

		case apiErr != nil && apiErr.IsQuotaExceeded():
			c.quota.Exhaust()
			metrics.PlatformCallsTotal.WithLabelValues(operation, "quota_exceeded").Inc()
			return nil, errors.Wrapf(ownDomain.ErrQuotaExceeded, "operação %s rejeitada pela API", operation)

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			lastErr = errors.Errorf("status %d: %s", resp.StatusCode, truncateBody(body))
			logrus.WithFields(logrus.Fields{
				"operation": operation,
				"status":    resp.StatusCode,
				"attempt":   attempt + 1,
			}).Warn("youtube: transient error, will retry")
			continue

		default:
			metrics.PlatformCallsTotal.WithLabelValues(operation, "error").Inc()
			return nil, errors.Errorf("operação %s rejeitada com status %d: %s", operation, resp.StatusCode, truncateBody(body))
		}
	}

	metrics.PlatformCallsTotal.WithLabelValues(operation, "transient_error").Inc()

	return nil, ownDomain.NewTransientPlatformError(operation, 0, errors.Wrapf(lastErr, "tentativas esgotadas (%d)", c.cfg.YouTube.RetryMaxAttempts))
}

func (c *youtubeClient) backoff(attempt int) time.Duration {
	delay := float64(c.cfg.YouTube.RetryBaseDelay()) * math.Pow(c.cfg.YouTube.RetryBackoffFactor, float64(attempt-1))
	if delay > float64(c.cfg.YouTube.RetryMaxDelay()) {
		delay = float64(c.cfg.YouTube.RetryMaxDelay())
	}

	return time.Duration(delay)
}

func (c *youtubeClient) wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseAPIError(body []byte) *youtubedomain.ErrorResponse {
	var apiErr youtubedomain.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Code == 0 {
		return nil
	}

	return &apiErr
}

func truncateBody(body []byte) string {
	const maxLen = 512
	if len(body) <= maxLen {
		return string(body)
	}

	return string(body[:maxLen]) + "... (" + strconv.Itoa(len(body)) + " bytes)"
}
