package cache

import (
	"context"
	"sync"
	"time"

	"github.com/iWorld-y/company_radar/app/research/pkg/logger"
)

// DefaultSweepInterval 默认清理间隔
const DefaultSweepInterval = 30 * time.Minute

// Sweeper 定期清理过期缓存，实现 kratos transport.Server 以随应用启停
type Sweeper struct {
	store    Store
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSweeper interval 非正数时使用默认间隔
func NewSweeper(store Store, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{store: store, interval: interval}
}

// Start 阻塞直到 Stop 被调用或 ctx 取消
func (s *Sweeper) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	logger.Log.Infof("缓存清理任务启动，间隔 %s", s.interval)
	s.Run(ctx)
	return nil
}

// Stop 停止清理任务
func (s *Sweeper) Stop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// Run 阻塞运行直到 ctx 取消
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	removed, err := s.store.Sweep(ctx)
	if err != nil {
		logger.Log.Errorf("缓存清理失败: %v", err)
		return
	}
	if removed > 0 {
		logger.Log.Infof("已清理 %d 条过期缓存", removed)
	}
}
