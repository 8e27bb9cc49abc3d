//go:build !darwin

package permissions

// CheckPermissions 非 macOS 系统不需要特殊权限
func CheckPermissions() Status {
	return Status{Accessibility: true, ScreenRecording: true}
}

// RequestAccessibilityPermission 请求辅助功能权限
func RequestAccessibilityPermission() bool {
	return true
}

// OpenSettings 打开缺失权限对应的系统设置页面
func OpenSettings(Status) {}
