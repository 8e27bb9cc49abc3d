package auto

import (
	"fmt"
	"image"
)

// Region 表示矩形区域（左上角 + 宽高），截图接口使用此形式
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect 转换为 image.Rectangle
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Empty 区域是否没有面积
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// String 返回字符串表示
func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Bounds 屏幕坐标下的轴对齐矩形 [left, top, right, bottom]，配置文件使用此形式
type Bounds [4]int

// Left 左边界
func (b Bounds) Left() int { return b[0] }

// Top 上边界
func (b Bounds) Top() int { return b[1] }

// Right 右边界
func (b Bounds) Right() int { return b[2] }

// Bottom 下边界
func (b Bounds) Bottom() int { return b[3] }

// Region 转换为左上角 + 宽高形式
func (b Bounds) Region() Region {
	return Region{
		X:      b[0],
		Y:      b[1],
		Width:  b[2] - b[0],
		Height: b[3] - b[1],
	}
}

// Valid 检查边界是否构成非空矩形
func (b Bounds) Valid() bool {
	return b[0] >= 0 && b[1] >= 0 && b[2] > b[0] && b[3] > b[1]
}
