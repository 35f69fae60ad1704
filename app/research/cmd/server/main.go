package main

import (
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/company_radar/app/research/pkg/config"
	"github.com/iWorld-y/company_radar/app/research/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "company_radar"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/research/configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()
	// 初始化日志记录器，包含时间戳、调用者信息、服务ID等上下文
	klog := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	helper := log.NewHelper(klog)

	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		helper.Fatalf("无法加载配置文件: %v", err)
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("无法初始化日志: %v", err)
		_ = logger.InitLogger("info", "") // 降级处理
	}
	logger.Log.Info("启动公司调研助手...")

	app, cleanup, err := initApp(cfg, klog)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}
