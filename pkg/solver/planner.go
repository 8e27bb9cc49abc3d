package solver

import "sort"

// Plan 将分配结果按槽位升序排列并压缩为步数序列
//
// 光标只向前移动，按升序访问槽位。每个步数 d 对应 d 次前进和 1 次选择。
func Plan(a Assignment) MovePlan {
	sorted := a
	sort.Ints(sorted[:])
	return MovePlan{Sorted: sorted, Deltas: Deltas(sorted[:])}
}

// Deltas 计算升序序列的相邻差值，第一个值为序列首元素（起点视为 0）
func Deltas(sorted []int) []int {
	out := make([]int, len(sorted))
	prev := 0
	for i, v := range sorted {
		out[i] = v - prev
		prev = v
	}
	return out
}
