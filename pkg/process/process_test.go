package process

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindProcessSelf(t *testing.T) {
	exe, err := os.Executable()
	if err != nil {
		t.Skipf("无法获取可执行文件路径: %v", err)
	}
	name := filepath.Base(exe)
	// Linux 下进程名最多 15 个字符
	if len(name) > 15 {
		name = name[:15]
	}

	matches, err := FindProcess(context.Background(), name)
	if err != nil {
		t.Skipf("当前环境无法枚举进程: %v", err)
	}

	found := false
	for _, m := range matches {
		if m.PID == os.Getpid() {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("应找到测试进程自身 (PID=%d, 名称=%s)", os.Getpid(), name)
	}
}

func TestFindProcessNoMatch(t *testing.T) {
	matches, err := FindProcess(context.Background(), "no-such-process-fpsolver-test")
	if err != nil {
		t.Skipf("当前环境无法枚举进程: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("不应找到进程: %+v", matches)
	}
}

func TestIsProcessRunning(t *testing.T) {
	if !IsProcessRunning(os.Getpid()) {
		t.Error("测试进程自身应在运行")
	}
}

// fakeWatcher 使用可控的查询函数和时钟
func fakeWatcher(results ...[]ProcessInfo) (*Watcher, *int, *time.Time) {
	calls := 0
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	w := NewWatcher("game.exe", time.Second)
	w.lookup = func(ctx context.Context, name string) ([]ProcessInfo, error) {
		r := results[min(calls, len(results)-1)]
		calls++
		return r, nil
	}
	w.now = func() time.Time { return now }
	return w, &calls, &now
}

func TestWatcherCache(t *testing.T) {
	game := []ProcessInfo{{PID: 42, Name: "game.exe"}}
	w, calls, now := fakeWatcher(game, nil)
	ctx := context.Background()

	running, err := w.Running(ctx)
	if err != nil || !running {
		t.Fatalf("第一次检查应返回运行中: %v %v", running, err)
	}
	if w.PID() != 42 {
		t.Errorf("PID = %d, 期望 42", w.PID())
	}

	*now = now.Add(500 * time.Millisecond)
	if running, _ := w.Running(ctx); !running {
		t.Error("缓存未过期时应返回上次结果")
	}
	if *calls != 1 {
		t.Errorf("缓存未过期时不应重新查询, 调用次数 %d", *calls)
	}

	*now = now.Add(time.Second)
	if running, _ := w.Running(ctx); running {
		t.Error("缓存过期后应返回新结果")
	}
	if *calls != 2 {
		t.Errorf("缓存过期后应重新查询, 调用次数 %d", *calls)
	}
	if w.PID() != 0 {
		t.Errorf("进程退出后 PID 应为 0, 实际 %d", w.PID())
	}
}

func TestWatcherCachesError(t *testing.T) {
	denied := errors.New("权限不足")
	calls := 0
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	w := NewWatcher("game.exe", 0)
	w.lookup = func(ctx context.Context, name string) ([]ProcessInfo, error) {
		calls++
		if calls == 1 {
			return nil, denied
		}
		return []ProcessInfo{{PID: 7, Name: name}}, nil
	}
	w.now = func() time.Time { return now }
	ctx := context.Background()

	if w.ttl != DefaultTTL {
		t.Errorf("ttl 为 0 时应使用默认值, 实际 %v", w.ttl)
	}

	running, err := w.Running(ctx)
	if !errors.Is(err, denied) || running {
		t.Fatalf("查询失败时应返回错误, 实际 %v %v", running, err)
	}

	// 缓存期内每个采样周期都返回同一个错误，不重新枚举进程
	for i := 0; i < 10; i++ {
		now = now.Add(100 * time.Millisecond)
		if _, again := w.Running(ctx); again != err {
			t.Fatalf("缓存期内应返回同一个错误, 实际 %v", again)
		}
	}
	if calls != 1 {
		t.Errorf("缓存期内不应重新查询, 调用次数 %d", calls)
	}

	now = now.Add(DefaultTTL)
	running, err = w.Running(ctx)
	if err != nil || !running {
		t.Errorf("缓存过期后应重新查询并成功: %v %v", running, err)
	}
	if calls != 2 || w.PID() != 7 {
		t.Errorf("调用次数 = %d, PID = %d", calls, w.PID())
	}
}

func TestWatcherName(t *testing.T) {
	if got := NewWatcher("GTA5.exe", time.Second).Name(); got != "GTA5.exe" {
		t.Errorf("Name() = %s, 期望 GTA5.exe", got)
	}
}
