package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`     // 服务器配置
	Postgres   PostgresConfig   `mapstructure:"postgres"`   // PostgreSQL配置
	Igdb       IgdbConfig       `mapstructure:"igdb"`       // 外部游戏目录（IGDB）配置
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"` // 图片托管（Cloudinary）配置
	CORS       CORSConfig       `mapstructure:"cors"`       // 跨域配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// IgdbConfig IGDB目录API配置
type IgdbConfig struct {
	BaseURL      string `mapstructure:"base_url"`      // API基础地址
	TokenURL     string `mapstructure:"token_url"`     // 令牌签发地址（Twitch OAuth2）
	ClientID     string `mapstructure:"client_id"`     // 客户端ID
	ClientSecret string `mapstructure:"client_secret"` // 客户端密钥
	Timeout      int    `mapstructure:"timeout"`       // 请求超时（秒）
	Proxy        string `mapstructure:"proxy"`         // 代理地址
}

// CloudinaryConfig 图片托管配置
type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"` // 云名称
	APIKey    string `mapstructure:"api_key"`    // API Key
	APISecret string `mapstructure:"api_secret"` // API Secret
	Folder    string `mapstructure:"folder"`     // 封面图上传目录
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"` // 允许的前端来源
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("IGDB_CLIENT_ID"); v != "" {
		cfg.Igdb.ClientID = v
	}
	if v := os.Getenv("IGDB_CLIENT_SECRET"); v != "" {
		cfg.Igdb.ClientSecret = v
	}
	if v := os.Getenv("IGDB_PROXY"); v != "" {
		cfg.Igdb.Proxy = v
	}
	if v := os.Getenv("CLOUDINARY_CLOUD_NAME"); v != "" {
		cfg.Cloudinary.CloudName = v
	}
	if v := os.Getenv("CLOUDINARY_API_KEY"); v != "" {
		cfg.Cloudinary.APIKey = v
	}
	if v := os.Getenv("CLOUDINARY_API_SECRET"); v != "" {
		cfg.Cloudinary.APISecret = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = strings.Split(v, ",")
	}
}
