package solver

import (
	"image"

	"github.com/zoeyai/fpsolver/pkg/vision"
)

// DefaultThreshold 标题激活阈值，距离严格小于该值视为小游戏已出现
const DefaultThreshold = 0.1

// Detector 通过比较标题区域判断小游戏是否处于活动状态
type Detector struct {
	metric    vision.Metric
	header    image.Image
	threshold float64
}

// NewDetector 创建检测器，threshold <= 0 时使用 DefaultThreshold
func NewDetector(metric vision.Metric, header image.Image, threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{metric: metric, header: header, threshold: threshold}
}

// Threshold 激活阈值
func (d *Detector) Threshold() float64 {
	return d.threshold
}

// Check 返回是否激活以及标题截图与模板的距离
func (d *Detector) Check(capture image.Image) (active bool, distance float64) {
	distance = d.metric.Distance(capture, d.header)
	return distance < d.threshold, distance
}
