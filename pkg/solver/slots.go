package solver

import (
	"image"
	"math"

	"github.com/zoeyai/fpsolver/pkg/vision"
)

// Scores 计算每个碎片模板到每个槽位截图的距离
func Scores(metric vision.Metric, fragments [FragmentCount]image.Image, slots [SlotCount]image.Image) ScoreMatrix {
	var m ScoreMatrix
	for i, frag := range fragments {
		for j, slot := range slots {
			m[i][j] = metric.Distance(frag, slot)
		}
	}
	return m
}

// Solve 为每个碎片分配一个互不相同的槽位
func Solve(metric vision.Metric, fragments [FragmentCount]image.Image, slots [SlotCount]image.Image) Assignment {
	return SolveScores(Scores(metric, fragments, slots))
}

// SolveScores 按碎片顺序贪心分配：每个碎片在尚未被占用的槽位中取距离最小者，
// 相等时取下标较小的槽位。排在前面的碎片优先选择，后面的碎片可能因此拿不到
// 自己的最佳槽位。
//
// 8 个槽位最多被占用 3 个，每一步总有可选槽位，因此结果总是合法的单射。
// 剩余槽位的距离全为 NaN 时取第一个未占用的槽位。
func SolveScores(m ScoreMatrix) Assignment {
	var (
		a       Assignment
		claimed [SlotCount]bool
	)
	for i := range m {
		best := -1
		bestScore := math.Inf(1)
		first := -1
		for j, score := range m[i] {
			if claimed[j] {
				continue
			}
			if first < 0 {
				first = j
			}
			if score < bestScore {
				bestScore = score
				best = j
			}
		}
		if best < 0 {
			best = first
		}
		a[i] = best
		claimed[best] = true
	}
	return a
}
