package model

// TokenResponse Twitch OAuth2令牌响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// IgdbCover IGDB封面对象（cover.url 为缩略图地址，可能是 //… 形式）
type IgdbCover struct {
	ID  uint64 `json:"id"`
	URL string `json:"url"`
}

// IgdbGame IGDB目录返回的原始条目
// 版本/合集类条目通常没有自己的封面，需要沿 parent_game 向基础作品回溯
type IgdbGame struct {
	ID         uint64     `json:"id"`
	Name       string     `json:"name"`
	Category   int        `json:"category"`
	ParentGame uint64     `json:"parent_game"`
	Cover      *IgdbCover `json:"cover"`
}
