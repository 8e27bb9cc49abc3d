// Package screen 提供屏幕区域截图功能
package screen

import (
	"fmt"
	"image"
	"sync"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
	purescreenshot "github.com/vova616/screenshot"

	"github.com/zoeyai/fpsolver/pkg/auto"
)

// 截图后端名称
const (
	BackendRobotgo    = "robotgo"
	BackendScreenshot = "screenshot"
	BackendPure       = "pure"
)

// Capturer 将屏幕矩形区域截取为像素缓冲
type Capturer interface {
	Capture(r auto.Region) (image.Image, error)
}

// CapturerFunc 函数适配器
type CapturerFunc func(r auto.Region) (image.Image, error)

// Capture 调用 f(r)
func (f CapturerFunc) Capture(r auto.Region) (image.Image, error) {
	return f(r)
}

// NewCapturer 按后端名称创建截图器
func NewCapturer(backend string) (Capturer, error) {
	switch backend {
	case "", BackendRobotgo:
		return RobotgoCapturer{}, nil
	case BackendScreenshot:
		return ScreenshotCapturer{Display: 0}, nil
	case BackendPure:
		return PureCapturer{}, nil
	default:
		return nil, fmt.Errorf("不支持的截图后端: %s", backend)
	}
}

// RobotgoCapturer 使用 robotgo.CaptureImg 截图
type RobotgoCapturer struct{}

// Capture 截取屏幕区域
func (RobotgoCapturer) Capture(r auto.Region) (image.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("截图区域为空: %s", r)
	}
	in := auto.NormalizeRegionForInput(r)
	img, err := robotgo.CaptureImg(in.X, in.Y, in.Width, in.Height)
	if err != nil {
		return nil, fmt.Errorf("截取区域 %s 失败: %w", r, err)
	}
	return img, nil
}

// ScreenshotCapturer 使用 kbinani/screenshot 截图，坐标相对于指定显示器
type ScreenshotCapturer struct {
	Display int
}

// Capture 截取屏幕区域
func (s ScreenshotCapturer) Capture(r auto.Region) (image.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("截图区域为空: %s", r)
	}
	origin := screenshot.GetDisplayBounds(s.Display).Min
	img, err := screenshot.CaptureRect(r.Rect().Add(origin))
	if err != nil {
		return nil, fmt.Errorf("截取区域 %s 失败: %w", r, err)
	}
	return img, nil
}

// PureCapturer 使用 vova616/screenshot 截图（纯 Go，Linux 下走 X11 协议）
type PureCapturer struct{}

// Capture 截取屏幕区域
func (PureCapturer) Capture(r auto.Region) (image.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("截图区域为空: %s", r)
	}
	img, err := purescreenshot.CaptureRect(r.Rect())
	if err != nil {
		return nil, fmt.Errorf("截取区域 %s 失败: %w", r, err)
	}
	return img, nil
}

// CaptureAll 并发截取多个区域，按输入顺序返回；任一失败返回第一个错误
func CaptureAll(c Capturer, regions []auto.Region) ([]image.Image, error) {
	images := make([]image.Image, len(regions))
	errs := make([]error, len(regions))

	var wg sync.WaitGroup
	for i, r := range regions {
		wg.Add(1)
		go func(i int, r auto.Region) {
			defer wg.Done()
			images[i], errs[i] = c.Capture(r)
		}(i, r)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return images, nil
}

// GetScreenSize 获取屏幕尺寸（物理像素，与截图分辨率一致）
func GetScreenSize() (width, height int) {
	return auto.GetPhysicalScreenSize()
}
