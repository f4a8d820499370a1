package igdb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"RetroCatalog/internal/config"
	"RetroCatalog/internal/model"
	"RetroCatalog/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// tokenSafetyMargin 令牌提前失效余量，避免临界时刻拿着过期令牌调目录API
const tokenSafetyMargin = 60 * time.Second

// TokenCache 客户端凭据令牌缓存
// 服务启动时构造一次，按引用注入各流水线；缓存到 expires_in 减去安全余量，过期后按需重取
type TokenCache struct {
	cfg        *config.IgdbConfig
	httpClient *http.Client
	logger     *logrus.Logger

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewTokenCache 创建TokenCache
func NewTokenCache(cfg *config.IgdbConfig, logger *logrus.Logger) *TokenCache {
	return &TokenCache{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg.Timeout, cfg.Proxy, logger),
		logger:     logger,
	}
}

// Token 返回可用的Bearer令牌，无有效缓存时向签发端换取一次（失败不重试，直接上抛）
func (t *TokenCache) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Now().Before(t.expiry) {
		return t.token, nil
	}

	params := url.Values{}
	params.Set("client_id", t.cfg.ClientID)
	params.Set("client_secret", t.cfg.ClientSecret)
	params.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.TokenURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", &model.UpstreamAuthError{Body: err.Error()}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.logger.Errorf("关闭令牌响应体失败: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.UpstreamAuthError{Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &model.UpstreamAuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tokenResp model.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", &model.UpstreamAuthError{Status: resp.StatusCode, Body: "响应体解析失败: " + err.Error()}
	}
	if tokenResp.AccessToken == "" {
		return "", &model.UpstreamAuthError{Status: resp.StatusCode, Body: "响应体缺少access_token"}
	}

	t.token = tokenResp.AccessToken
	t.expiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - tokenSafetyMargin)
	t.logger.Infof("获取目录API令牌成功，有效期%d秒", tokenResp.ExpiresIn)
	return t.token, nil
}
