package cv

import (
	"image"
	"math"
)

// CcoeffMetric 基于相关系数的距离度量
type CcoeffMetric struct{}

// Distance 返回 (1 - 相关系数) / 2，转换失败或结果为 NaN（如纯色图像）时返回 1
func (CcoeffMetric) Distance(a, b image.Image) float64 {
	if Identical(a, b) {
		return 0
	}

	tmpl, err := ImageToMat(a)
	if err != nil {
		return 1
	}
	defer tmpl.Close()

	cand, err := ImageToMat(b)
	if err != nil {
		return 1
	}
	defer cand.Close()

	score := 0.0
	if cand.Cols() != tmpl.Cols() || cand.Rows() != tmpl.Rows() {
		resized := ResizeImage(cand, tmpl.Cols(), tmpl.Rows())
		score = CalCcoeffConfidence(resized, tmpl)
		resized.Close()
	} else {
		score = CalCcoeffConfidence(cand, tmpl)
	}

	if math.IsInf(score, 0) {
		return 1
	}
	return Clamp((1 - score) / 2)
}

// Clamp 将距离限制在 [0, 1]，NaN 视为最远
func Clamp(d float64) float64 {
	switch {
	case math.IsNaN(d):
		return 1
	case d < 0:
		return 0
	case d > 1:
		return 1
	default:
		return d
	}
}
