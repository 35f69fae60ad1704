package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iWorld-y/company_radar/app/research/pkg/model"
)

const (
	defaultPrefix = "company_radar:"
	scanBatch     = 100
)

// RedisOptions Redis 缓存配置
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Expiry   time.Duration
	Now      func() time.Time
}

// RedisStore 以 JSON 保存条目，Redis TTL 与有效期一致
type RedisStore struct {
	client *redis.Client
	prefix string
	expiry time.Duration
	now    func() time.Time
}

// NewRedisStore 创建 Redis 缓存
func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	expiry := opts.Expiry
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &RedisStore{client: client, prefix: prefix, expiry: expiry, now: now}
}

func (s *RedisStore) entryKey(key string) string {
	return fmt.Sprintf("%sresearch:%s", s.prefix, key)
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	data, err := s.client.Get(ctx, s.entryKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("failed to load cache entry from redis: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	// TTL 由 Redis 负责，这里再按时钟校验一次
	if !IsValid(e, s.now(), s.expiry) {
		return Entry{}, false, nil
	}
	return e, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, result model.ResearchResult) error {
	data, err := json.Marshal(Entry{Result: result, Timestamp: s.now()})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := s.client.Set(ctx, s.entryKey(key), data, s.expiry).Err(); err != nil {
		return fmt.Errorf("failed to save cache entry to redis: %w", err)
	}
	return nil
}

// Sweep 扫描前缀下的条目，删除按时钟已过期但 TTL 尚未触发的条目
func (s *RedisStore) Sweep(ctx context.Context) (int, error) {
	now := s.now()
	removed := 0
	iter := s.client.Scan(ctx, 0, s.entryKey("*"), scanBatch).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		data, err := s.client.Get(ctx, k).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return removed, fmt.Errorf("failed to read %s: %w", k, err)
		}

		var e Entry
		if err := json.Unmarshal(data, &e); err == nil && IsValid(e, now, s.expiry) {
			continue
		}
		if err := s.client.Del(ctx, k).Err(); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", k, err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan cache entries: %w", err)
	}
	return removed, nil
}

// Close 关闭 Redis 连接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
