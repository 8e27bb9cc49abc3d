// Package permissions 检查截图与按键注入所需的系统权限
//
// 只有 macOS 需要授权（辅助功能用于按键注入，屏幕录制用于截图），
// 其他平台总是返回已授权。
package permissions

import "strings"

// Status 权限状态
type Status struct {
	Accessibility   bool `json:"accessibility"`
	ScreenRecording bool `json:"screen_recording"`
}

// AllGranted 所有权限均已授予
func (s Status) AllGranted() bool {
	return s.Accessibility && s.ScreenRecording
}

// Instructions 返回缺失权限的授权说明，全部授予时返回空字符串
func (s Status) Instructions() string {
	if s.AllGranted() {
		return ""
	}

	var b strings.Builder
	b.WriteString("需要授权以下权限才能正常工作:\n\n")
	if !s.Accessibility {
		b.WriteString("- 辅助功能权限 (用于发送按键)\n")
		b.WriteString("  系统设置 > 隐私与安全性 > 辅助功能\n\n")
	}
	if !s.ScreenRecording {
		b.WriteString("- 屏幕录制权限 (用于截取指纹和槽位区域)\n")
		b.WriteString("  系统设置 > 隐私与安全性 > 屏幕录制\n\n")
	}
	b.WriteString("授权后需要重启程序才能生效。")
	return b.String()
}
