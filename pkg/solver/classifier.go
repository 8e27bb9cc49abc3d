package solver

import (
	"image"
	"math"

	"github.com/zoeyai/fpsolver/pkg/vision"
)

// Classifier 在已知变体的完整模板中找出与截图最接近的一个
//
// 没有置信度下限：即使所有模板都不像，也返回距离最小的那个。
type Classifier struct {
	metric    vision.Metric
	templates []image.Image
}

// NewClassifier 创建分类器，templates 的顺序决定返回的下标
func NewClassifier(metric vision.Metric, templates []image.Image) *Classifier {
	return &Classifier{metric: metric, templates: templates}
}

// Classify 返回最接近的模板下标（从 0 开始）以及到每个模板的距离
func (c *Classifier) Classify(capture image.Image) (index int, scores []float64) {
	scores = make([]float64, len(c.templates))
	for i, tpl := range c.templates {
		scores[i] = c.metric.Distance(capture, tpl)
	}
	return MinIndex(scores), scores
}

// MinIndex 返回最小值的下标，相等时取第一个；NaN 不参与比较
// 空切片返回 -1，全部为 NaN 时返回 0
func MinIndex(scores []float64) int {
	if len(scores) == 0 {
		return -1
	}
	best := -1
	for i, s := range scores {
		if math.IsNaN(s) {
			continue
		}
		if best < 0 || s < scores[best] {
			best = i
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
