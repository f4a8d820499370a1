package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"RetroCatalog/internal/config"
	"RetroCatalog/internal/interfaces"
	"RetroCatalog/internal/model"
	"RetroCatalog/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// excludedCategories 搜索时排除的IGDB条目类别：合集(3)、重制(8)、复刻(9)、移植(11)、套装(13)
// 这些都不是馆藏意义上的"原版作品"
var excludedCategories = []string{"3", "8", "9", "11", "13"}

type Adapter struct {
	cfg        *config.IgdbConfig
	tokens     interfaces.TokenSource
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewIgdbAdapter 创建IGDB目录适配器（令牌源由外部注入，便于共享缓存）
func NewIgdbAdapter(cfg *config.IgdbConfig, tokens interfaces.TokenSource, logger *logrus.Logger) interfaces.CatalogAdapter {
	return &Adapter{
		cfg:        cfg,
		tokens:     tokens,
		httpClient: httpclient.NewHTTPClient(cfg.Timeout, cfg.Proxy, logger),
		logger:     logger,
	}
}

// SearchGames 按标题+平台编码搜索IGDB，返回上游原始条目（保持上游顺序，不去重）
func (a *Adapter) SearchGames(ctx context.Context, title, platformCode string) ([]model.IgdbGame, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	query := buildQuery(title, platformCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+"/games", strings.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Client-ID", a.cfg.ClientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &model.UpstreamSearchError{Body: err.Error()}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			a.logger.Errorf("关闭目录搜索响应体失败: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.UpstreamSearchError{Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &model.UpstreamSearchError{Status: resp.StatusCode, Body: string(body)}
	}

	var games []model.IgdbGame
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, &model.UpstreamSearchError{Status: resp.StatusCode, Body: "响应体解析失败: " + err.Error()}
	}

	a.logger.Infof("目录搜索「%s」平台%s，返回%d条", title, platformCode, len(games))
	return games, nil
}

// buildQuery 构造Apicalypse查询：按平台过滤、排除非原版类别，请求封面与父条目字段供继承解析
func buildQuery(title, platformCode string) string {
	escaped := strings.ReplaceAll(title, `"`, `\"`)
	return fmt.Sprintf(
		`search "%s"; fields name, category, parent_game, cover.url; where platforms = (%s) & category != (%s); limit 50;`,
		escaped, platformCode, strings.Join(excludedCategories, ","),
	)
}
