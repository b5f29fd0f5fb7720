package youtubeclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/titlelab/title-rotator-api/infrastructure/integrator/youtube/domain"
	"github.com/titlelab/title-rotator-api/infrastructure/repository"
	"github.com/titlelab/title-rotator-api/internal/config"
	ownDomain "github.com/titlelab/title-rotator-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

// CredentialManager mantém em memória o access token de cada canal e o
// renova de forma proativa antes da expiração. O refresh token persiste
// cifrado no banco e nunca entra no cache.
type CredentialManager struct {
	cfg         *config.Config
	channelRepo repository.ChannelRepository
	httpClient  *http.Client

	mu    sync.Mutex
	cache map[string]*cachedCredential
}

type cachedCredential struct {
	accessToken string
	expiresAt   time.Time
}

func NewCredentialManager(cfg *config.Config, channelRepo repository.ChannelRepository) *CredentialManager {
	return &CredentialManager{
		cfg:         cfg,
		channelRepo: channelRepo,
		httpClient:  &http.Client{Timeout: cfg.YouTube.RequestTimeout()},
		cache:       make(map[string]*cachedCredential),
	}
}

// AccessToken devolve um access token válido para o canal, renovando quando
// o token em cache está ausente ou dentro da margem de expiração.
func (m *CredentialManager) AccessToken(ctx context.Context, channelID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cached, ok := m.cache[channelID]
	if ok && time.Now().Add(m.cfg.YouTube.TokenRefreshMargin()).Before(cached.expiresAt) {
		return cached.accessToken, nil
	}

	return m.refreshLocked(ctx, channelID)
}

// Invalidate descarta o token em cache do canal. Usado quando a API rejeita
// o token antes da expiração prevista.
func (m *CredentialManager) Invalidate(channelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.cache, channelID)
}

// Refresh força uma renovação imediata ignorando o cache.
func (m *CredentialManager) Refresh(ctx context.Context, channelID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.cache, channelID)

	return m.refreshLocked(ctx, channelID)
}

func (m *CredentialManager) refreshLocked(ctx context.Context, channelID string) (string, error) {
	credential, err := m.channelRepo.GetCredential(ctx, channelID)
	if err != nil {
		return "", errors.Wrap(err, "erro buscando credencial do canal")
	}

	if credential == nil {
		return "", errors.Wrapf(ownDomain.ErrReauthorizationRequired, "canal %s nunca foi autorizado", channelID)
	}

	token, err := m.exchangeRefreshToken(ctx, credential.RefreshToken)
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	m.cache[channelID] = &cachedCredential{
		accessToken: token.AccessToken,
		expiresAt:   expiresAt,
	}

	credential.ExpiresAt = expiresAt
	credential.UpdatedAt = time.Now()
	if err := m.channelRepo.SaveCredential(ctx, credential); err != nil {
		logrus.WithError(err).WithField("channel_id", channelID).
			Warn("youtube: failed to persist credential metadata after refresh")
	}

	return token.AccessToken, nil
}

func (m *CredentialManager) exchangeRefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", m.cfg.YouTube.ClientID)
	form.Set("client_secret", m.cfg.YouTube.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.YouTube.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "erro montando requisição de refresh token")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, ownDomain.NewTransientPlatformError("token.refresh", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro lendo resposta do refresh token")
	}

	if resp.StatusCode != http.StatusOK {
		var tokenErr youtubedomain.TokenErrorResponse
		if err := json.Unmarshal(body, &tokenErr); err == nil && tokenErr.IsInvalidGrant() {
			return nil, errors.Wrap(ownDomain.ErrReauthorizationRequired, tokenErr.ErrorDescription)
		}

		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return nil, ownDomain.NewTransientPlatformError("token.refresh", resp.StatusCode, errors.New(string(body)))
		}

		return nil, errors.Errorf("refresh token rejeitado com status %d: %s", resp.StatusCode, string(body))
	}

	var token TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, errors.Wrap(err, "erro no unmarshal da resposta de token")
	}

	return &token, nil
}
