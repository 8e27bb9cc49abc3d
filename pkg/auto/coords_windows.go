//go:build windows

package auto

import (
	"math"
	"sync"
	"syscall"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/fpsolver/internal/logger"
)

// =====================================================================
// Windows 坐标空间
// =====================================================================
//
// 配置中的区域按物理像素（1920x1080 下的游戏画面）给出，而 robotgo 在
// DPI 缩放下可能使用逻辑坐标。启动时对比全屏截图尺寸与 GetScreenSize()
// 得到 coordScale = 截图像素 / robotgo 坐标：
//   - GetScreenSize 返回逻辑尺寸时 coordScale = DPI 缩放比
//   - 两者一致时 coordScale = 1.0
//
// 分辨率检查使用物理尺寸，区域截图前把物理区域换算为 robotgo 坐标。
// =====================================================================

var (
	coordinateScaleMu sync.Mutex
	cachedScaleX      float64
	cachedScaleY      float64
	coordsDetected    bool
)

var (
	user32DPI            = syscall.NewLazyDLL("user32.dll")
	gdi32DPI             = syscall.NewLazyDLL("gdi32.dll")
	procGetDeviceCapsDPI = gdi32DPI.NewProc("GetDeviceCaps")
	procGetDCDPI         = user32DPI.NewProc("GetDC")
	procReleaseDCDPI     = user32DPI.NewProc("ReleaseDC")
)

const logpixelsX = 88

// GetDPIScale 获取 Windows DPI 缩放比例 (1.0 = 100%, 1.5 = 150%)
func GetDPIScale() float64 {
	dpi := 0
	if procGetDCDPI.Find() == nil && procGetDeviceCapsDPI.Find() == nil {
		dc, _, _ := procGetDCDPI.Call(0)
		if dc != 0 {
			d, _, _ := procGetDeviceCapsDPI.Call(dc, uintptr(logpixelsX))
			if d > 0 {
				dpi = int(d)
			}
			procReleaseDCDPI.Call(0, dc)
		}
	}
	if dpi <= 0 {
		dpi = 96
	}

	scale := float64(dpi) / 96.0
	if scale < 0.5 || scale > 4.0 {
		scale = 1.0
	}
	return scale
}

// GetPhysicalScreenSize 获取物理屏幕尺寸（与截图分辨率一致）
func GetPhysicalScreenSize() (width, height int) {
	w, h := robotgo.GetScreenSize()
	scaleX, scaleY := getCoordinateScale()
	return ScaleInt(w, scaleX), ScaleInt(h, scaleY)
}

// NormalizeRegionForInput 将物理像素区域换算为 robotgo 输入坐标区域
func NormalizeRegionForInput(r Region) Region {
	scaleX, scaleY := getCoordinateScale()
	if scaleX == 1.0 && scaleY == 1.0 {
		return r
	}

	out := Region{
		X:      ScaleInt(r.X, 1.0/scaleX),
		Y:      ScaleInt(r.Y, 1.0/scaleY),
		Width:  ScaleInt(r.Width, 1.0/scaleX),
		Height: ScaleInt(r.Height, 1.0/scaleY),
	}
	if r.Width > 0 && out.Width < 1 {
		out.Width = 1
	}
	if r.Height > 0 && out.Height < 1 {
		out.Height = 1
	}
	return out
}

func getCoordinateScale() (float64, float64) {
	coordinateScaleMu.Lock()
	defer coordinateScaleMu.Unlock()

	if coordsDetected {
		return cachedScaleX, cachedScaleY
	}

	cachedScaleX, cachedScaleY = detectCoordinateScale()
	coordsDetected = true
	logger.Debug("坐标缩放: DPI=%.0f%% coordScale=%.3fx%.3f", GetDPIScale()*100, cachedScaleX, cachedScaleY)
	return cachedScaleX, cachedScaleY
}

func detectCoordinateScale() (float64, float64) {
	reportedW, reportedH := robotgo.GetScreenSize()
	if reportedW <= 0 || reportedH <= 0 {
		return 1.0, 1.0
	}

	img, err := robotgo.CaptureImg()
	if err != nil || img == nil {
		s := GetDPIScale()
		return s, s
	}

	captureW := img.Bounds().Dx()
	captureH := img.Bounds().Dy()
	if captureW <= 0 || captureH <= 0 {
		return 1.0, 1.0
	}

	return normalizeScale(float64(captureW) / float64(reportedW)),
		normalizeScale(float64(captureH) / float64(reportedH))
}

func normalizeScale(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1.0
	}
	if v < 0.5 || v > 4.0 {
		return 1.0
	}
	if math.Abs(v-1.0) < 0.05 {
		return 1.0
	}
	return v
}
