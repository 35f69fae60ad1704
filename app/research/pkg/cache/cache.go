package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/company_radar/app/research/pkg/config"
	"github.com/iWorld-y/company_radar/app/research/pkg/model"
)

// DefaultExpiry 缓存有效期
const DefaultExpiry = time.Hour

// Entry 缓存条目
type Entry struct {
	Result    model.ResearchResult `json:"result"`
	Timestamp time.Time            `json:"timestamp"`
}

// Store 调研结果缓存
type Store interface {
	// Get 条目不存在或已过期时 ok 为 false
	Get(ctx context.Context, key string) (Entry, bool, error)
	// Put 保存 result 的深拷贝，之后修改 result 不影响缓存
	Put(ctx context.Context, key string, result model.ResearchResult) error
	// Sweep 删除过期条目，返回删除数量
	Sweep(ctx context.Context) (int, error)
}

// Key 公司名忽略大小写和首尾空白，岗位原样参与
func Key(companyName, jobRole string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(companyName)) + ":" + jobRole))
	return hex.EncodeToString(sum[:])
}

// IsValid 条目存在时间严格小于 expiry 时有效
func IsValid(e Entry, now time.Time, expiry time.Duration) bool {
	return now.Sub(e.Timestamp) < expiry
}

// NewFromConfig 根据配置选择内存或 Redis 后端
func NewFromConfig(cfg *config.CacheConfig) (Store, error) {
	expiry := config.Seconds(cfg.Expiry, DefaultExpiry)
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemoryStore(expiry, nil), nil
	case "redis":
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis cache backend requires redis.addr")
		}
		return NewRedisStore(RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
			Expiry:   expiry,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}
