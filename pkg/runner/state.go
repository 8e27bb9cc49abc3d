package runner

// State 主循环状态
type State int32

const (
	// Idle 按固定间隔采样标题区域
	Idle State = iota
	// Solving 截取指纹和槽位并计算移动计划
	Solving
	// Actuating 发送按键
	Actuating
	// Cooldown 等待游戏校验提交结果
	Cooldown
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Solving:
		return "Solving"
	case Actuating:
		return "Actuating"
	case Cooldown:
		return "Cooldown"
	default:
		return "Unknown"
	}
}
