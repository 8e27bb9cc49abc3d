package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/zoeyai/fpsolver/internal/logger"
	"github.com/zoeyai/fpsolver/pkg/auto/input"
	"github.com/zoeyai/fpsolver/pkg/auto/screen"
	"github.com/zoeyai/fpsolver/pkg/config"
	"github.com/zoeyai/fpsolver/pkg/permissions"
	"github.com/zoeyai/fpsolver/pkg/process"
	"github.com/zoeyai/fpsolver/pkg/runner"
	"github.com/zoeyai/fpsolver/pkg/vision"
	"github.com/zoeyai/fpsolver/pkg/vision/reference"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// 命令行参数
	var (
		configFile  = flag.String("config", "", "配置文件路径 (默认 ~/.fpsolver/config.json)")
		imageDir    = flag.String("img", "", "参考图像目录")
		metricName  = flag.String("metric", "", "相似度度量: phash | ccoeff")
		backend     = flag.String("backend", "", "截图后端: robotgo | screenshot | pure")
		processName = flag.String("process", "", "仅在该进程运行时采样")
		dumpDir     = flag.String("dump", "", "保存每轮截图的目录")
		debug       = flag.Bool("debug", false, "输出调试日志")
		saveConfig  = flag.Bool("save", false, "保存配置到本地")
		showVersion = flag.Bool("version", false, "显示版本信息")
		showHelp    = flag.Bool("help", false, "显示帮助信息")
	)

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}
	if *showHelp {
		printHelp()
		return
	}

	manager := config.GetDefaultManager()
	if *configFile != "" {
		manager = config.NewManagerWithFile(*configFile)
	}

	cfg, err := manager.Load()
	if err != nil {
		logger.Warn("加载配置失败: %v", err)
	}

	// 命令行参数优先级高于配置文件
	if *imageDir != "" {
		cfg.ImageDir = *imageDir
	}
	if *metricName != "" {
		cfg.Metric = *metricName
	}
	if *backend != "" {
		cfg.CaptureBackend = *backend
	}
	if *processName != "" {
		cfg.ProcessName = *processName
	}
	if *dumpDir != "" {
		cfg.DumpDir = *dumpDir
	}
	if *debug {
		cfg.LogLevel = logger.DEBUG.String()
	}
	if fixed := cfg.Validate(); len(fixed) > 0 {
		logger.Warn("参数无效，已恢复默认值: %v", fixed)
	}

	log := logger.Default()
	log.SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		if err := log.SetFile(cfg.LogFile); err != nil {
			log.Warn("打开日志文件失败: %v", err)
		}
	}
	defer log.Close()

	if *saveConfig {
		if err := manager.Save(cfg); err != nil {
			log.Warn("保存配置失败: %v", err)
		} else {
			log.Info("配置已保存到 %s", manager.GetConfigFile())
		}
	}

	if err := run(cfg, log); err != nil {
		log.Error("%v", err)
		log.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	if runtime.GOOS == "darwin" {
		checkMacOSPermissions(log)
	}

	lib, err := reference.Load(cfg.ImageDir, cfg.VariantCount)
	if err != nil {
		return fmt.Errorf("加载参考图像失败: %w", err)
	}
	log.Debug("已加载 %d 个指纹变体: %s", lib.Len(), cfg.ImageDir)

	metric, err := vision.NewMetric(cfg.Metric)
	if err != nil {
		return err
	}
	capturer, err := screen.NewCapturer(cfg.CaptureBackend)
	if err != nil {
		return err
	}

	opts := runner.Options{
		Config:   cfg,
		Library:  lib,
		Metric:   metric,
		Capturer: capturer,
		Keyboard: input.NewKeyboard(cfg.KeyDelay()),
		Logger:   log,
	}
	if cfg.ProcessName != "" {
		watcher := process.NewWatcher(cfg.ProcessName, process.DefaultTTL)
		opts.Gate = watcher
		log.Info("仅在进程 %s 运行时采样", watcher.Name())
	}

	loop, err := runner.New(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	width, height := screen.GetScreenSize()
	return loop.Start(ctx, width, height)
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("fpsolver v%s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

// printHelp 打印帮助信息
func printHelp() {
	fmt.Println("fpsolver - 指纹小游戏自动求解")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  fpsolver [选项]")
	fmt.Println()
	fmt.Println("选项:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("示例:")
	fmt.Println("  # 使用默认配置和 ./img 下的参考图像")
	fmt.Println("  fpsolver")
	fmt.Println()
	fmt.Println("  # 使用 OpenCV 度量并保存为默认配置")
	fmt.Println("  fpsolver -metric ccoeff -save")
	fmt.Println()
	fmt.Println("  # 调试模式，保存每轮截图")
	fmt.Println("  fpsolver -debug -dump ./captures")
	fmt.Println()
	fmt.Printf("配置文件位置: %s\n", config.GetDefaultManager().GetConfigFile())
}

// checkMacOSPermissions 检查 macOS 权限
// 缺少辅助功能权限时先弹出系统授权请求，仍有缺失时打开对应的设置页面
func checkMacOSPermissions(log *logger.Logger) {
	status := permissions.CheckPermissions()
	log.Debug("辅助功能权限: %v, 屏幕录制权限: %v", status.Accessibility, status.ScreenRecording)

	if !status.Accessibility {
		status.Accessibility = permissions.RequestAccessibilityPermission()
	}
	if status.AllGranted() {
		return
	}
	log.Warn("%s", status.Instructions())
	permissions.OpenSettings(status)
}
