// Package auto 提供截图与按键注入共用的几何类型、坐标换算和时钟抽象。
// 具体功能分布在子包中：screen（区域截图）、input（按键注入）。
package auto

import (
	"context"
	"math"
	"time"
)

// Clock 可注入的休眠抽象，主循环通过它等待，测试中替换为假时钟
type Clock interface {
	// Sleep 休眠 d，ctx 取消时提前返回 ctx.Err()
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock 基于 time.Timer 的真实时钟
type SystemClock struct{}

// Sleep 休眠
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ScaleCoord 按比例缩放坐标值
func ScaleCoord(value int, scale float64) int {
	if scale <= 0 {
		return value
	}
	return int(math.Round(float64(value) / scale))
}

// ScaleInt 缩放整数值
func ScaleInt(value int, factor float64) int {
	if factor <= 0 {
		return value
	}
	return int(math.Round(float64(value) * factor))
}
