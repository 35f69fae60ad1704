package server

import (
	"context"
	"embed"
	"io/fs"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/company_radar/app/research/internal/service"
	"github.com/iWorld-y/company_radar/app/research/pkg/config"
	"github.com/iWorld-y/company_radar/app/research/pkg/model"
)

const (
	OperationResearch = "/research.v1.Research/Research"
	OperationHealth   = "/research.v1.Research/Health"
)

// DefaultTimeout server.timeout 缺省或无法解析时使用
const DefaultTimeout = 120 * time.Second

//go:embed assets
var assets embed.FS

func NewHTTPServer(cfg *config.Config, s *service.ResearchService, logger log.Logger) *http.Server {
	c := cfg.Server
	helper := log.NewHelper(logger)
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Filter(RequestID, CORS),
		http.Timeout(serverTimeout(c.Timeout, helper)),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}

	srv := http.NewServer(opts...)
	RegisterResearchHTTPServer(srv, s)

	static, _ := fs.Sub(assets, "assets/static")
	srv.HandlePrefix("/static/", nethttp.StripPrefix("/static/", nethttp.FileServer(nethttp.FS(static))))

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, _ := assets.ReadFile("assets/index.html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(content)
	})

	helper.Infof("HTTP 服务监听 %s", c.Addr)
	return srv
}

func serverTimeout(raw string, helper *log.Helper) time.Duration {
	if raw == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		helper.Warnf("server.timeout %q 无效，使用默认值 %s", raw, DefaultTimeout)
		return DefaultTimeout
	}
	return d
}

// RegisterResearchHTTPServer 注册 JSON 接口
func RegisterResearchHTTPServer(s *http.Server, srv *service.ResearchService) {
	r := s.Route("/")
	r.POST("/research", researchHandler(srv))
	r.GET("/health", healthHandler(srv))
}

func researchHandler(srv *service.ResearchService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in model.ResearchRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationResearch)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Research(ctx, req.(*model.ResearchRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func healthHandler(srv *service.ResearchService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationHealth)
		h := ctx.Middleware(func(ctx context.Context, _ interface{}) (interface{}, error) {
			return srv.Health(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
