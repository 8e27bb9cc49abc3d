package vision

import (
	"image"
	"testing"

	"github.com/zoeyai/fpsolver/internal/testimg"
	"github.com/zoeyai/fpsolver/pkg/vision/cv"
	"github.com/zoeyai/fpsolver/pkg/vision/phash"
)

func TestNewMetric(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{MetricPHash, false},
		{MetricCcoeff, false},
		{"sift", true},
	}

	for _, tt := range tests {
		m, err := NewMetric(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewMetric(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && m == nil {
			t.Errorf("NewMetric(%q) 返回 nil", tt.name)
		}
	}

	m, _ := NewMetric("")
	if _, ok := m.(*phash.Metric); !ok {
		t.Errorf("默认度量应为 phash, 实际 %T", m)
	}
	m, _ = NewMetric(MetricCcoeff)
	if _, ok := m.(cv.CcoeffMetric); !ok {
		t.Errorf("ccoeff 度量类型错误: %T", m)
	}
}

func TestPHashImplementsPinner(t *testing.T) {
	m, _ := NewMetric(MetricPHash)
	if _, ok := m.(Pinner); !ok {
		t.Error("phash 度量应支持 Pin")
	}
}

func TestMetricFunc(t *testing.T) {
	calls := 0
	m := MetricFunc(func(a, b image.Image) float64 {
		calls++
		return 0.25
	})
	img := testimg.Solid(2, 2, image.White.C)
	if d := m.Distance(img, img); d != 0.25 || calls != 1 {
		t.Errorf("MetricFunc 调用异常: d=%v calls=%d", d, calls)
	}
}
