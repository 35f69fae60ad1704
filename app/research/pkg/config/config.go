package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Wiki        WikiConfig        `yaml:"wiki"`
	Cache       CacheConfig       `yaml:"cache"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"` // time.ParseDuration 格式，例如 120s
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout int    `yaml:"timeout"` // 秒
}

// SearchConfig 新闻搜索相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider"` // newsapi, tavily, searxng
	NewsAPI  NewsAPIConfig `yaml:"newsapi"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// NewsAPIConfig newsapi.org 配置
type NewsAPIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// WikiConfig 百科抓取配置
type WikiConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // 秒
}

// CacheConfig 结果缓存配置
type CacheConfig struct {
	Backend       string      `yaml:"backend"`        // memory 或 redis
	Expiry        int         `yaml:"expiry"`         // 秒
	SweepInterval int         `yaml:"sweep_interval"` // 秒
	Redis         RedisConfig `yaml:"redis"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig LLM 调用限流配置，为 0 时不限流
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// Default 返回内置默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:    "0.0.0.0:8000",
			Timeout: "120s",
		},
		LLM: LLMConfig{
			BaseURL: "https://models.github.ai/inference",
			Model:   "openai/gpt-4o",
			Timeout: 60,
		},
		Search: SearchConfig{
			Provider: "newsapi",
			NewsAPI: NewsAPIConfig{
				BaseURL: "https://newsapi.org/v2/everything",
			},
		},
		Wiki: WikiConfig{
			BaseURL: "https://en.wikipedia.org/wiki/",
			Timeout: 15,
		},
		Cache: CacheConfig{
			Backend:       "memory",
			Expiry:        3600,
			SweepInterval: 1800,
			Redis: RedisConfig{
				Prefix: "company_radar:",
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig 从指定路径加载配置，文件内容覆盖默认值，再应用环境变量
func LoadConfig(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// 仅依赖环境变量运行
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

// applyEnv 环境变量优先于配置文件
func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("GITHUB_TOKEN")); v != "" {
		c.LLM.APIKey = v
	}
	if v := strings.TrimSpace(getenv("NEWS_API_KEY")); v != "" {
		c.Search.NewsAPI.APIKey = v
	}
	if v := strings.TrimSpace(getenv("TAVILY_API_KEY")); v != "" {
		c.Search.Tavily.APIKey = v
	}
	if v := strings.TrimSpace(getenv("REDIS_ADDR")); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		c.Server.Addr = "0.0.0.0:" + strings.TrimPrefix(v, ":")
	}
}

// Seconds 将秒数配置转换为 time.Duration，非正数时使用 fallback
func Seconds(n int, fallback time.Duration) time.Duration {
	if n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
