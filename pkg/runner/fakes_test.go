package runner

import (
	"bytes"
	"context"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/zoeyai/fpsolver/internal/logger"
	"github.com/zoeyai/fpsolver/pkg/auto"
	"github.com/zoeyai/fpsolver/pkg/config"
	"github.com/zoeyai/fpsolver/pkg/vision/reference"
)

// tableMetric 按图像指针对查表，未登记的组合返回 fallback
type tableMetric struct {
	mu       sync.Mutex
	table    map[[2]image.Image]float64
	fallback float64
}

func newTableMetric(fallback float64) *tableMetric {
	return &tableMetric{table: make(map[[2]image.Image]float64), fallback: fallback}
}

func (m *tableMetric) set(a, b image.Image, d float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table[[2]image.Image{a, b}] = d
}

func (m *tableMetric) Distance(a, b image.Image) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a == b {
		return 0
	}
	if d, ok := m.table[[2]image.Image{a, b}]; ok {
		return d
	}
	if d, ok := m.table[[2]image.Image{b, a}]; ok {
		return d
	}
	return m.fallback
}

// pinMetric 记录 Pin 调用
type pinMetric struct {
	*tableMetric
	pinned int
}

func (m *pinMetric) Pin(images ...image.Image) {
	m.pinned += len(images)
}

// fakeCapturer 按区域返回预设图像
type fakeCapturer struct {
	mu     sync.Mutex
	images map[auto.Region]image.Image
	fail   map[auto.Region]error
	calls  []auto.Region
}

func (c *fakeCapturer) Capture(r auto.Region) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, r)
	if err := c.fail[r]; err != nil {
		return nil, err
	}
	if img, ok := c.images[r]; ok {
		return img, nil
	}
	return blank(), nil
}

func (c *fakeCapturer) Calls() []auto.Region {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]auto.Region(nil), c.calls...)
}

// fakeKeyboard 记录按键顺序，第 failAt 次按键返回错误（从 1 开始，0 表示不失败）
type fakeKeyboard struct {
	keys   []string
	failAt int
	err    error
}

func (k *fakeKeyboard) Press(key string) error {
	if k.failAt > 0 && len(k.keys)+1 == k.failAt {
		return k.err
	}
	k.keys = append(k.keys, key)
	return nil
}

// fakeClock 记录休眠时长，第 cancelAt 次休眠时取消 ctx
type fakeClock struct {
	sleeps   []time.Duration
	cancelAt int
	cancel   context.CancelFunc
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	if c.cancel != nil && len(c.sleeps) == c.cancelAt {
		c.cancel()
	}
	return ctx.Err()
}

// fakeGate 固定返回进程状态
type fakeGate struct {
	running bool
	err     error
	calls   int
}

func (g *fakeGate) Running(ctx context.Context) (bool, error) {
	g.calls++
	return g.running, g.err
}

func blank() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 2, 2))
}

// fixture 1920x1080 默认几何下的完整测试环境
//
// 变体 2 的指纹截图距离最近 (0.02)；变体 2 的碎片 0..3 分别最匹配槽位 5、2、7、0。
type fixture struct {
	cfg      *config.Config
	lib      *reference.Library
	metric   *tableMetric
	capturer *fakeCapturer
	keyboard *fakeKeyboard
	clock    *fakeClock
	logs     *bytes.Buffer
	log      *logger.Logger

	headerCapture image.Image
	fpCapture     image.Image
	slotCaptures  [config.SlotCount]image.Image
}

func newFixture(t *testing.T, headerDistance float64) *fixture {
	t.Helper()

	cfg := config.DefaultConfig()
	metric := newTableMetric(0.9)

	variants := make([]reference.Variant, 4)
	for i := range variants {
		variants[i].Full = blank()
		for j := range variants[i].Fragments {
			variants[i].Fragments[j] = blank()
		}
	}
	lib, err := reference.NewLibrary(blank(), variants)
	if err != nil {
		t.Fatalf("创建参考图像库失败: %v", err)
	}

	f := &fixture{
		cfg:           cfg,
		lib:           lib,
		metric:        metric,
		keyboard:      &fakeKeyboard{},
		clock:         &fakeClock{},
		logs:          &bytes.Buffer{},
		headerCapture: blank(),
		fpCapture:     blank(),
	}
	f.log = logger.NewWithWriter(f.logs)

	images := map[auto.Region]image.Image{
		cfg.HeaderBounds.Region():      f.headerCapture,
		cfg.FingerprintBounds.Region(): f.fpCapture,
	}
	for i, r := range cfg.SlotRegions() {
		f.slotCaptures[i] = blank()
		images[r] = f.slotCaptures[i]
	}
	f.capturer = &fakeCapturer{images: images, fail: map[auto.Region]error{}}

	metric.set(f.headerCapture, lib.Header(), headerDistance)
	for i, d := range []float64{0.5, 0.02, 0.6, 0.7} {
		metric.set(f.fpCapture, lib.Variant(i).Full, d)
	}
	frags := lib.Fragments(1)
	for i, slot := range []int{5, 2, 7, 0} {
		metric.set(frags[i], f.slotCaptures[slot], 0.01)
	}
	return f
}

func (f *fixture) loop(t *testing.T) *Loop {
	t.Helper()
	l, err := New(Options{
		Config:   f.cfg,
		Library:  f.lib,
		Metric:   f.metric,
		Capturer: f.capturer,
		Keyboard: f.keyboard,
		Clock:    f.clock,
		Logger:   f.log,
	})
	if err != nil {
		t.Fatalf("创建主循环失败: %v", err)
	}
	return l
}
