//go:build !windows

package auto

import (
	"github.com/go-vgo/robotgo"
)

// NormalizeRegionForInput 非 Windows 平台截图坐标与 robotgo 坐标一致，无需缩放
func NormalizeRegionForInput(r Region) Region {
	return r
}

// GetDPIScale 非 Windows 平台返回 1.0
func GetDPIScale() float64 {
	return 1.0
}

// GetPhysicalScreenSize 获取物理屏幕尺寸
// 非 Windows 平台等同于 robotgo.GetScreenSize()（macOS Retina 由 robotgo 自行处理）
func GetPhysicalScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}
