package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/company_radar/app/research/pkg/engine"
	"github.com/iWorld-y/company_radar/app/research/pkg/model"
)

const (
	// ReasonCompanyNameRequired 公司名为空
	ReasonCompanyNameRequired = "COMPANY_NAME_REQUIRED"
	// ReasonResearchFailed 调研过程出现未预期的错误
	ReasonResearchFailed = "RESEARCH_FAILED"
)

// Researcher 调研引擎
type Researcher interface {
	Research(ctx context.Context, req *model.ResearchRequest) (*model.ResearchResult, error)
}

// HealthReply 健康检查响应
type HealthReply struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"`
}

type ResearchService struct {
	eng Researcher
	log *log.Helper
	now func() time.Time
}

func NewResearchService(eng Researcher, logger log.Logger) *ResearchService {
	return &ResearchService{
		eng: eng,
		log: log.NewHelper(logger),
		now: time.Now,
	}
}

// Research 把引擎错误映射为对外的 HTTP 错误
func (s *ResearchService) Research(ctx context.Context, req *model.ResearchRequest) (*model.ResearchResult, error) {
	res, err := s.eng.Research(ctx, req)
	if err == nil {
		return res, nil
	}
	if stderrors.Is(err, engine.ErrEmptyCompanyName) {
		return nil, errors.BadRequest(ReasonCompanyNameRequired, "Company name is required")
	}
	s.log.WithContext(ctx).Errorf("research %q failed: %v", req.CompanyName, err)
	return nil, errors.InternalServer(ReasonResearchFailed,
		fmt.Sprintf("An error occurred while researching %s. Please try again.", strings.TrimSpace(req.CompanyName)))
}

func (s *ResearchService) Health(_ context.Context) (*HealthReply, error) {
	now := s.now()
	return &HealthReply{
		Status:    "healthy",
		Timestamp: float64(now.UnixNano()) / float64(time.Second),
	}, nil
}
