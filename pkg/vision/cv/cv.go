// Package cv 提供基于 OpenCV (gocv) 的图像距离度量
//
// CcoeffMetric 把候选图像缩放到模板尺寸后计算 TM_CCOEFF_NORMED 相关系数，
// 并映射为 [0, 1] 距离。像素完全相同的图像直接返回 0。
//
//	d := cv.CcoeffMetric{}.Distance(capture, template)
package cv
