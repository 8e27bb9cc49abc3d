// Package runner 驱动求解主循环：Idle → Solving → Actuating → Cooldown → Idle
//
// 截图、按键、休眠和度量都通过接口注入，循环本身不依赖真实屏幕或计时。
package runner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/zoeyai/fpsolver/internal/logger"
	"github.com/zoeyai/fpsolver/pkg/auto"
	"github.com/zoeyai/fpsolver/pkg/auto/screen"
	"github.com/zoeyai/fpsolver/pkg/config"
	"github.com/zoeyai/fpsolver/pkg/solver"
	"github.com/zoeyai/fpsolver/pkg/vision"
	"github.com/zoeyai/fpsolver/pkg/vision/reference"
)

// ErrUnsupportedDisplay 屏幕分辨率与配置不一致
var ErrUnsupportedDisplay = errors.New("不支持的屏幕分辨率")

// Keyboard 按键执行器
type Keyboard interface {
	Press(key string) error
}

// ProcessGate 判断游戏进程是否在运行
type ProcessGate interface {
	Running(ctx context.Context) (bool, error)
}

// Options 主循环依赖
type Options struct {
	Config   *config.Config
	Library  *reference.Library
	Metric   vision.Metric
	Capturer screen.Capturer
	Keyboard Keyboard
	// Clock 为空时使用 auto.SystemClock
	Clock auto.Clock
	// Gate 为空时不检查进程
	Gate ProcessGate
	// Logger 为空时使用默认 logger
	Logger *logger.Logger
}

// Cycle 一次完整求解的记录
type Cycle struct {
	// Number 本次运行中的第几轮，从 1 开始
	Number int
	// Variant 识别出的变体编号，从 1 开始
	Variant        int
	HeaderDistance float64
	// VariantScores 指纹截图到每个变体完整模板的距离
	VariantScores []float64
	SlotScores    solver.ScoreMatrix
	Assignment    solver.Assignment
	Plan          solver.MovePlan
}

// Loop 求解主循环
type Loop struct {
	cfg      *config.Config
	lib      *reference.Library
	metric   vision.Metric
	capturer screen.Capturer
	keyboard Keyboard
	clock    auto.Clock
	gate     ProcessGate
	log      *logger.Logger

	detector   *solver.Detector
	classifier *solver.Classifier
	regions    []auto.Region

	state  atomic.Int32
	cycles int
	// gateErr 上次记录的进程检查错误，相同错误只记录一次
	gateErr string
}

// New 创建主循环
func New(opts Options) (*Loop, error) {
	switch {
	case opts.Config == nil:
		return nil, errors.New("缺少配置")
	case opts.Library == nil:
		return nil, errors.New("缺少参考图像库")
	case opts.Metric == nil:
		return nil, errors.New("缺少相似度度量")
	case opts.Capturer == nil:
		return nil, errors.New("缺少截图器")
	case opts.Keyboard == nil:
		return nil, errors.New("缺少按键执行器")
	}
	if opts.Clock == nil {
		opts.Clock = auto.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	if p, ok := opts.Metric.(vision.Pinner); ok {
		p.Pin(opts.Library.All()...)
	}

	cfg := opts.Config
	slots := cfg.SlotRegions()
	regions := append([]auto.Region{cfg.FingerprintBounds.Region()}, slots[:]...)

	return &Loop{
		cfg:        cfg,
		lib:        opts.Library,
		metric:     opts.Metric,
		capturer:   opts.Capturer,
		keyboard:   opts.Keyboard,
		clock:      opts.Clock,
		gate:       opts.Gate,
		log:        opts.Logger,
		detector:   solver.NewDetector(opts.Metric, opts.Library.Header(), cfg.ActivationThreshold),
		classifier: solver.NewClassifier(opts.Metric, opts.Library.Templates()),
		regions:    regions,
	}, nil
}

// State 当前状态
func (l *Loop) State() State {
	return State(l.state.Load())
}

func (l *Loop) setState(s State) {
	l.state.Store(int32(s))
}

// CheckDisplay 检查屏幕分辨率是否为支持的分辨率
func (l *Loop) CheckDisplay(width, height int) error {
	if width != l.cfg.Display.Width || height != l.cfg.Display.Height {
		return fmt.Errorf("%w: %dx%d (仅支持 %s)", ErrUnsupportedDisplay, width, height, l.cfg.Display)
	}
	return nil
}

// Start 检查分辨率后进入主循环
//
// 分辨率不支持时只记录日志，等待固定时长后返回 nil，不会开始采样。
func (l *Loop) Start(ctx context.Context, width, height int) error {
	if err := l.CheckDisplay(width, height); err != nil {
		l.log.Error("%v", err)
		_ = l.clock.Sleep(ctx, l.cfg.UnsupportedExitDelay())
		return nil
	}

	l.log.Info("检测到 %dx%d 分辨率", width, height)
	l.log.Info("等待指纹 ...")
	return l.Run(ctx)
}

// Run 循环执行 Tick 并按采样间隔休眠，直到 ctx 取消或出错
func (l *Loop) Run(ctx context.Context) error {
	for {
		if _, err := l.Tick(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		}
		if err := l.clock.Sleep(ctx, l.cfg.PollInterval()); err != nil {
			return nil
		}
	}
}

// Tick 执行一次采样；小游戏未出现时返回 (nil, nil)
//
// 一旦开始发送按键就不会被 ctx 打断，ctx 只在冷却休眠时生效。
func (l *Loop) Tick(ctx context.Context) (*Cycle, error) {
	l.setState(Idle)

	if l.gate != nil {
		running, err := l.gate.Running(ctx)
		if err != nil {
			if msg := err.Error(); msg != l.gateErr {
				l.log.Warn("检查进程失败: %v", err)
				l.gateErr = msg
			}
			return nil, nil
		}
		l.gateErr = ""
		if !running {
			return nil, nil
		}
	}

	header, err := l.capturer.Capture(l.cfg.HeaderBounds.Region())
	if err != nil {
		return nil, fmt.Errorf("截取标题区域失败: %w", err)
	}

	active, distance := l.detector.Check(header)
	if !active {
		return nil, nil
	}
	l.log.Debug("标题距离 %.3f，开始求解", distance)

	l.cycles++
	cycle := &Cycle{Number: l.cycles, HeaderDistance: distance}
	defer l.setState(Idle)

	images, err := l.solve(cycle)
	if err != nil {
		return nil, err
	}
	l.dump(cycle, header, images)

	l.setState(Actuating)
	start := time.Now()
	err = Actuate(l.keyboard, cycle.Plan, l.cfg.Keys)
	l.log.LogEvent("ACT", err == nil, time.Since(start), fmt.Sprintf("deltas=%v", cycle.Plan.Deltas))
	if err != nil {
		return cycle, fmt.Errorf("发送按键失败: %w", err)
	}
	l.log.Info("校验中 ...")

	l.setState(Cooldown)
	if err := l.clock.Sleep(ctx, l.cfg.Cooldown()); err != nil {
		return cycle, err
	}
	return cycle, nil
}

// solve 截取指纹与槽位，识别变体并生成移动计划
func (l *Loop) solve(cycle *Cycle) ([]image.Image, error) {
	l.setState(Solving)

	start := time.Now()
	images, err := screen.CaptureAll(l.capturer, l.regions)
	l.log.LogEvent("CAP", err == nil, time.Since(start), fmt.Sprintf("%d 个区域", len(l.regions)))
	if err != nil {
		return nil, fmt.Errorf("截取指纹区域失败: %w", err)
	}

	start = time.Now()
	index, scores := l.classifier.Classify(images[0])
	cycle.Variant = l.lib.Variant(index).Number
	cycle.VariantScores = scores
	l.log.LogEvent("CLS", true, time.Since(start), fmt.Sprintf("variant=%d scores=%.3f", cycle.Variant, scores))
	l.log.Info("检测到指纹: %d", cycle.Variant)

	start = time.Now()
	var slots [solver.SlotCount]image.Image
	copy(slots[:], images[1:])
	cycle.SlotScores = solver.Scores(l.metric, l.lib.Fragments(index), slots)
	cycle.Assignment = solver.SolveScores(cycle.SlotScores)
	cycle.Plan = solver.Plan(cycle.Assignment)
	l.log.LogEvent("SLV", true, time.Since(start), fmt.Sprintf("assignment=%s sorted=%v", cycle.Assignment, cycle.Plan.Sorted))

	return images, nil
}

// dump 保存本轮截图，失败只记录警告
func (l *Loop) dump(cycle *Cycle, header image.Image, images []image.Image) {
	if l.cfg.DumpDir == "" {
		return
	}
	dir := filepath.Join(l.cfg.DumpDir, fmt.Sprintf("cycle-%04d", cycle.Number))

	files := map[string]image.Image{
		"header.png":      header,
		"fingerprint.png": images[0],
	}
	for i, img := range images[1:] {
		files[fmt.Sprintf("slot-%d.png", i)] = img
	}
	for name, img := range files {
		if err := screen.SavePNG(filepath.Join(dir, name), img); err != nil {
			l.log.Warn("保存截图 %s 失败: %v", name, err)
		}
	}
}

// Actuate 按移动计划发送按键：每个步数 d 对应 d 次前进和 1 次选择，最后确认一次
func Actuate(kb Keyboard, plan solver.MovePlan, keys config.Keys) error {
	for _, d := range plan.Deltas {
		for i := 0; i < d; i++ {
			if err := kb.Press(keys.Advance); err != nil {
				return err
			}
		}
		if err := kb.Press(keys.Select); err != nil {
			return err
		}
	}
	return kb.Press(keys.Confirm)
}
