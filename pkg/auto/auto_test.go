package auto

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"
)

func TestBoundsRegion(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		want   Region
		valid  bool
	}{
		{
			name:   "header",
			bounds: Bounds{370, 90, 1550, 120},
			want:   Region{X: 370, Y: 90, Width: 1180, Height: 30},
			valid:  true,
		},
		{
			name:   "slot 0",
			bounds: Bounds{475, 271, 595, 391},
			want:   Region{X: 475, Y: 271, Width: 120, Height: 120},
			valid:  true,
		},
		{
			name:   "inverted",
			bounds: Bounds{100, 100, 50, 150},
			want:   Region{X: 100, Y: 100, Width: -50, Height: 50},
			valid:  false,
		},
		{
			name:   "zero",
			bounds: Bounds{},
			want:   Region{},
			valid:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bounds.Region(); got != tt.want {
				t.Errorf("Region() = %+v, 期望 %+v", got, tt.want)
			}
			if got := tt.bounds.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, 期望 %v", got, tt.valid)
			}
		})
	}
}

func TestRegionRect(t *testing.T) {
	r := Region{X: 974, Y: 157, Width: 346, Height: 528}
	want := image.Rect(974, 157, 1320, 685)
	if r.Rect() != want {
		t.Errorf("Rect() = %v, 期望 %v", r.Rect(), want)
	}
	if r.Empty() {
		t.Error("非空区域不应 Empty")
	}
	if !(Region{Width: 10}).Empty() {
		t.Error("高度为 0 的区域应 Empty")
	}
}

func TestSystemClockSleep(t *testing.T) {
	start := time.Now()
	if err := (SystemClock{}).Sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("Sleep 失败: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("休眠时间不足: %v", elapsed)
	}
}

func TestSystemClockCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := (SystemClock{}).Sleep(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("取消后应返回 context.Canceled, 实际 %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("取消后应立即返回")
	}
}

func TestScaleHelpers(t *testing.T) {
	if got := ScaleInt(1920, 1.5); got != 2880 {
		t.Errorf("ScaleInt = %d, 期望 2880", got)
	}
	if got := ScaleInt(100, 0); got != 100 {
		t.Errorf("非法缩放应保持原值, 实际 %d", got)
	}
	if got := ScaleCoord(2880, 1.5); got != 1920 {
		t.Errorf("ScaleCoord = %d, 期望 1920", got)
	}
}
