// Package input 提供按键注入功能
package input

import (
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"
)

// DefaultKeyDelay 按下/释放之后的默认间隔
const DefaultKeyDelay = 20 * time.Millisecond

// Toggler 按下或释放单个按键，direction 为 "down" 或 "up"
type Toggler func(key, direction string) error

// Keyboard 按键执行器
// 间隔作为构造参数传入，不修改 robotgo 的全局按键延迟
type Keyboard struct {
	delay  time.Duration
	toggle Toggler
	sleep  func(time.Duration)
}

// NewKeyboard 创建基于 robotgo 的按键执行器
func NewKeyboard(delay time.Duration) *Keyboard {
	return NewKeyboardWith(delay, robotgoToggle, time.Sleep)
}

// NewKeyboardWith 使用自定义按键和休眠实现创建执行器
func NewKeyboardWith(delay time.Duration, toggle Toggler, sleep func(time.Duration)) *Keyboard {
	if delay < 0 {
		delay = 0
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Keyboard{delay: delay, toggle: toggle, sleep: sleep}
}

// Delay 返回按键间隔
func (k *Keyboard) Delay() time.Duration {
	return k.delay
}

// Press 按下并释放按键，每个动作之后等待间隔
func (k *Keyboard) Press(key string) error {
	if key == "" {
		return fmt.Errorf("按键为空")
	}
	if err := k.toggle(key, "down"); err != nil {
		return fmt.Errorf("按下 %s 失败: %w", key, err)
	}
	k.pause()
	if err := k.toggle(key, "up"); err != nil {
		return fmt.Errorf("释放 %s 失败: %w", key, err)
	}
	k.pause()
	return nil
}

// PressN 连续按 n 次
func (k *Keyboard) PressN(key string, n int) error {
	for i := 0; i < n; i++ {
		if err := k.Press(key); err != nil {
			return err
		}
	}
	return nil
}

func (k *Keyboard) pause() {
	if k.delay > 0 {
		k.sleep(k.delay)
	}
}

func robotgoToggle(key, direction string) error {
	return robotgo.KeyToggle(key, direction)
}
