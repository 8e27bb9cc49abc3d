// Package process 检查游戏进程是否在运行，用于在游戏未启动时跳过截图
package process

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo 进程信息
type ProcessInfo struct {
	PID  int    `json:"pid"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// FindProcess 按名称查找进程 (不区分大小写，支持部分匹配)
func FindProcess(ctx context.Context, name string) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	name = strings.ToLower(name)
	var matches []ProcessInfo

	for _, proc := range procs {
		procName, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}

		if strings.Contains(strings.ToLower(procName), name) {
			exe, _ := proc.ExeWithContext(ctx)
			matches = append(matches, ProcessInfo{
				PID:  int(proc.Pid),
				Name: procName,
				Path: exe,
			})
		}
	}

	return matches, nil
}

// IsProcessRunning 检查进程是否正在运行
func IsProcessRunning(pid int) bool {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	running, err := proc.IsRunning()
	if err != nil {
		return false
	}
	return running
}

// DefaultTTL 进程检查结果的缓存时长
const DefaultTTL = 2 * time.Second

// Watcher 带缓存的进程存在检查
//
// 主循环每 100ms 采样一次，枚举进程开销较大，结果缓存 ttl 后再刷新。
type Watcher struct {
	name   string
	ttl    time.Duration
	lookup func(ctx context.Context, name string) ([]ProcessInfo, error)
	now    func() time.Time

	mu        sync.Mutex
	running   bool
	pid       int
	err       error
	checkedAt time.Time
	checked   bool
}

// NewWatcher 创建进程检查器，ttl <= 0 时使用 DefaultTTL
func NewWatcher(name string, ttl time.Duration) *Watcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Watcher{
		name:   name,
		ttl:    ttl,
		lookup: FindProcess,
		now:    time.Now,
	}
}

// Name 监视的进程名
func (w *Watcher) Name() string {
	return w.name
}

// Running 返回进程是否在运行；缓存过期前直接返回上次结果（包括上次的错误）
func (w *Watcher) Running(ctx context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if w.checked && now.Sub(w.checkedAt) < w.ttl {
		return w.running, w.err
	}

	matches, err := w.lookup(ctx, w.name)
	w.checkedAt = now
	w.checked = true
	w.running = len(matches) > 0 && err == nil
	w.pid = 0
	w.err = nil
	if err != nil {
		w.err = fmt.Errorf("查找进程 %s 失败: %w", w.name, err)
		return false, w.err
	}
	if w.running {
		w.pid = matches[0].PID
	}
	return w.running, nil
}

// PID 最近一次检查到的进程 PID，未运行时为 0
func (w *Watcher) PID() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pid
}
