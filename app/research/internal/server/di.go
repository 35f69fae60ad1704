package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/company_radar/app/research/internal/service"
	"github.com/iWorld-y/company_radar/app/research/pkg/engine"
)

// ProviderSet 是调研服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewSweeper,

	// Engine providers
	NewCacheStore,
	NewResearchEngine,
	wire.Bind(new(service.Researcher), new(*engine.Engine)),

	// Service providers
	service.NewResearchService,
)
