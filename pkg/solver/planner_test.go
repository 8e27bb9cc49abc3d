package solver

import (
	"reflect"
	"testing"
)

func TestDeltas(t *testing.T) {
	tests := []struct {
		name   string
		sorted []int
		want   []int
	}{
		{"with repeat", []int{1, 3, 3, 6}, []int{1, 2, 0, 3}},
		{"from zero", []int{0, 2, 5, 7}, []int{0, 2, 3, 2}},
		{"consecutive", []int{0, 1, 2, 3}, []int{0, 1, 1, 1}},
		{"last four", []int{4, 5, 6, 7}, []int{4, 1, 1, 1}},
		{"empty", []int{}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Deltas(tt.sorted); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Deltas(%v) = %v, 期望 %v", tt.sorted, got, tt.want)
			}
		})
	}
}

func TestPlan(t *testing.T) {
	p := Plan(Assignment{5, 2, 7, 0})

	if p.Sorted != [FragmentCount]int{0, 2, 5, 7} {
		t.Errorf("Sorted = %v, 期望 [0 2 5 7]", p.Sorted)
	}
	if !reflect.DeepEqual(p.Deltas, []int{0, 2, 3, 2}) {
		t.Errorf("Deltas = %v, 期望 [0 2 3 2]", p.Deltas)
	}
	if p.Steps() != 7 {
		t.Errorf("Steps = %d, 期望 7", p.Steps())
	}
}

func TestPlanDoesNotMutateAssignment(t *testing.T) {
	a := Assignment{6, 1, 4, 3}
	Plan(a)
	if a != (Assignment{6, 1, 4, 3}) {
		t.Errorf("Plan 不应修改分配结果: %v", a)
	}
}

func TestPlanReachesEverySlot(t *testing.T) {
	// 从起点 0 开始累加步数，应依次落在排序后的槽位上
	p := Plan(Assignment{7, 3, 0, 4})
	cursor := 0
	for i, d := range p.Deltas {
		if d < 0 {
			t.Fatalf("步数不能为负: %v", p.Deltas)
		}
		cursor += d
		if cursor != p.Sorted[i] {
			t.Errorf("第 %d 步光标 = %d, 期望 %d", i, cursor, p.Sorted[i])
		}
	}
}
