package solver

import (
	"image"
	"sync"
)

// tableMetric 按图像指针对查表的假度量，未登记的组合返回 fallback
type tableMetric struct {
	mu       sync.Mutex
	table    map[[2]image.Image]float64
	fallback float64
	calls    int
}

func newTableMetric(fallback float64) *tableMetric {
	return &tableMetric{table: make(map[[2]image.Image]float64), fallback: fallback}
}

func (m *tableMetric) set(a, b image.Image, d float64) {
	m.table[[2]image.Image{a, b}] = d
}

func (m *tableMetric) Distance(a, b image.Image) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
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

// blank 返回一个新的 1x1 图像，每次调用指针都不同
func blank() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

func blanks(n int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		out[i] = blank()
	}
	return out
}
