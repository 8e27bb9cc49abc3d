// Package solver 实现指纹小游戏的求解流水线：
// 标题检测、指纹分类、碎片到槽位的贪心分配，以及把分配结果压缩为移动步数。
//
// 所有函数都是纯函数，只依赖传入的 vision.Metric 和图像，不做截图或按键。
package solver

import (
	"fmt"
	"strings"

	"github.com/zoeyai/fpsolver/pkg/vision/reference"
)

const (
	// FragmentCount 每个变体的答案碎片数量
	FragmentCount = reference.FragmentCount
	// SlotCount 候选槽位数量（2 列 x 4 行，按行优先编号 0..7）
	SlotCount = 8
)

// Assignment 碎片下标 (0..3) 到槽位下标 (0..7) 的单射
type Assignment [FragmentCount]int

// Valid 检查所有槽位在范围内且互不相同
func (a Assignment) Valid() bool {
	var seen [SlotCount]bool
	for _, s := range a {
		if s < 0 || s >= SlotCount || seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}

// String 返回 {碎片:槽位,...} 形式
func (a Assignment) String() string {
	parts := make([]string, len(a))
	for i, s := range a {
		parts[i] = fmt.Sprintf("%d:%d", i, s)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// ScoreMatrix 碎片模板与槽位截图之间的距离，行为碎片，列为槽位
type ScoreMatrix [FragmentCount][SlotCount]float64

// MovePlan 移动计划
type MovePlan struct {
	// Sorted 升序排列的槽位下标
	Sorted [FragmentCount]int
	// Deltas 相邻槽位之间的步数，第一个值等于最小槽位本身
	Deltas []int
}

// Steps 前进键的总按键次数
func (p MovePlan) Steps() int {
	n := 0
	for _, d := range p.Deltas {
		n += d
	}
	return n
}
