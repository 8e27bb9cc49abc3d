// Package vision 提供两张图像之间的视觉距离计算
//
// 距离范围为 [0, 1]，0 表示相同。只有相对大小有意义：检测器与分类器、
// 槽位求解器都只比较距离的大小，不做额外标定。
//
// 支持的度量:
//   - phash: 感知哈希（32x32 灰度 DCT，取左上 8x8，汉明距离 / 64），默认
//   - ccoeff: OpenCV TM_CCOEFF_NORMED 相关系数，距离 = (1 - 相关系数) / 2
//
// 基本用法:
//
//	metric, err := vision.NewMetric(vision.MetricPHash)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d := metric.Distance(capture, template)
package vision

import (
	"fmt"
	"image"

	"github.com/zoeyai/fpsolver/pkg/vision/cv"
	"github.com/zoeyai/fpsolver/pkg/vision/phash"
)

// Metric 图像距离度量
// 必须确定、无副作用，且 Distance(x, x) == 0
type Metric interface {
	Distance(a, b image.Image) float64
}

// MetricFunc 函数适配器
type MetricFunc func(a, b image.Image) float64

// Distance 调用 f(a, b)
func (f MetricFunc) Distance(a, b image.Image) float64 {
	return f(a, b)
}

// Pinner 可选接口：预先缓存只读参考图像的中间结果
type Pinner interface {
	Pin(images ...image.Image)
}

// 度量名称
const (
	MetricPHash  = "phash"
	MetricCcoeff = "ccoeff"
)

// NewMetric 按名称创建度量
func NewMetric(name string) (Metric, error) {
	switch name {
	case "", MetricPHash:
		return phash.NewMetric(), nil
	case MetricCcoeff:
		return cv.CcoeffMetric{}, nil
	default:
		return nil, fmt.Errorf("不支持的相似度度量: %s", name)
	}
}
