// Package config 管理求解器的配置：屏幕几何、时序、按键与后端选择
//
// 配置以 JSON 保存在 ~/.fpsolver/config.json。文件不存在时使用默认值，
// 文件中缺省的字段保留默认值。几何参数只在启动时读取一次。
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zoeyai/fpsolver/internal/logger"
	"github.com/zoeyai/fpsolver/pkg/auto"
	"github.com/zoeyai/fpsolver/pkg/auto/screen"
	"github.com/zoeyai/fpsolver/pkg/vision"
)

// SlotCount 候选槽位数量
const SlotCount = 8

// Display 支持的屏幕分辨率
type Display struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String 返回 WxH 形式
func (d Display) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Keys 逻辑按键名称（robotgo 键名）
type Keys struct {
	// Advance 光标前进一格
	Advance string `json:"advance"`
	// Select 选中当前槽位
	Select string `json:"select"`
	// Confirm 提交答案
	Confirm string `json:"confirm"`
}

// Config 求解器配置
type Config struct {
	Display           Display                `json:"display"`
	HeaderBounds      auto.Bounds            `json:"header_bounds"`
	FingerprintBounds auto.Bounds            `json:"fingerprint_bounds"`
	SlotBounds        [SlotCount]auto.Bounds `json:"slot_bounds"`

	VariantCount int    `json:"variant_count"`
	ImageDir     string `json:"image_dir"`

	// PollIntervalMs 空闲时标题区域的采样间隔
	PollIntervalMs int `json:"poll_interval_ms"`
	// ActivationThreshold 标题距离严格小于该值视为小游戏出现
	ActivationThreshold float64 `json:"activation_threshold"`
	// ValidationDelayMs 提交后游戏校验动画的时长，冷却 = 该值 - 采样间隔
	ValidationDelayMs int `json:"validation_delay_ms"`
	// KeyDelayMs 按下与释放之后的等待
	KeyDelayMs int `json:"key_delay_ms"`
	// UnsupportedExitDelayMs 分辨率不支持时退出前的等待
	UnsupportedExitDelayMs int `json:"unsupported_exit_delay_ms"`

	Keys Keys `json:"keys"`

	Metric         string `json:"metric"`
	CaptureBackend string `json:"capture_backend"`
	// ProcessName 非空时仅在该进程运行时采样
	ProcessName string `json:"process_name"`
	// DumpDir 非空时把每轮截图保存到该目录
	DumpDir string `json:"dump_dir"`

	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// DefaultConfig 默认配置（1920x1080 游戏画面）
func DefaultConfig() *Config {
	return &Config{
		Display:           Display{Width: 1920, Height: 1080},
		HeaderBounds:      auto.Bounds{370, 90, 1550, 120},
		FingerprintBounds: auto.Bounds{974, 157, 1320, 685},
		SlotBounds: [SlotCount]auto.Bounds{
			{475, 271, 595, 391},
			{618, 271, 738, 391},
			{475, 414, 595, 535},
			{618, 414, 738, 535},
			{475, 558, 595, 680},
			{618, 558, 738, 680},
			{475, 702, 595, 823},
			{618, 702, 738, 823},
		},
		VariantCount:           4,
		ImageDir:               "img",
		PollIntervalMs:         100,
		ActivationThreshold:    0.1,
		ValidationDelayMs:      4350,
		KeyDelayMs:             20,
		UnsupportedExitDelayMs: 5000,
		Keys: Keys{
			Advance: "right",
			Select:  "enter",
			Confirm: "tab",
		},
		Metric:         vision.MetricPHash,
		CaptureBackend: screen.BackendRobotgo,
		LogLevel:       "INFO",
	}
}

// Validate 将非法值恢复为默认值，返回被修正的字段名
func (c *Config) Validate() []string {
	def := DefaultConfig()
	var fixed []string
	reset := func(name string) { fixed = append(fixed, name) }

	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		c.Display = def.Display
		reset("display")
	}
	if !c.HeaderBounds.Valid() {
		c.HeaderBounds = def.HeaderBounds
		reset("header_bounds")
	}
	if !c.FingerprintBounds.Valid() {
		c.FingerprintBounds = def.FingerprintBounds
		reset("fingerprint_bounds")
	}
	for i, b := range c.SlotBounds {
		if !b.Valid() {
			c.SlotBounds[i] = def.SlotBounds[i]
			reset(fmt.Sprintf("slot_bounds[%d]", i))
		}
	}
	if c.VariantCount < 1 {
		c.VariantCount = def.VariantCount
		reset("variant_count")
	}
	if c.ImageDir == "" {
		c.ImageDir = def.ImageDir
		reset("image_dir")
	}
	if c.PollIntervalMs <= 0 {
		c.PollIntervalMs = def.PollIntervalMs
		reset("poll_interval_ms")
	}
	if c.ActivationThreshold <= 0 || c.ActivationThreshold > 1 {
		c.ActivationThreshold = def.ActivationThreshold
		reset("activation_threshold")
	}
	if c.ValidationDelayMs < c.PollIntervalMs {
		c.ValidationDelayMs = max(def.ValidationDelayMs, c.PollIntervalMs)
		reset("validation_delay_ms")
	}
	if c.KeyDelayMs < 0 {
		c.KeyDelayMs = def.KeyDelayMs
		reset("key_delay_ms")
	}
	if c.UnsupportedExitDelayMs < 0 {
		c.UnsupportedExitDelayMs = def.UnsupportedExitDelayMs
		reset("unsupported_exit_delay_ms")
	}
	if c.Keys.Advance == "" {
		c.Keys.Advance = def.Keys.Advance
		reset("keys.advance")
	}
	if c.Keys.Select == "" {
		c.Keys.Select = def.Keys.Select
		reset("keys.select")
	}
	if c.Keys.Confirm == "" {
		c.Keys.Confirm = def.Keys.Confirm
		reset("keys.confirm")
	}
	switch c.Metric {
	case vision.MetricPHash, vision.MetricCcoeff:
	default:
		c.Metric = def.Metric
		reset("metric")
	}
	switch c.CaptureBackend {
	case screen.BackendRobotgo, screen.BackendScreenshot, screen.BackendPure:
	default:
		c.CaptureBackend = def.CaptureBackend
		reset("capture_backend")
	}
	if lvl := logger.ParseLevel(c.LogLevel).String(); lvl != c.LogLevel {
		c.LogLevel = lvl
		reset("log_level")
	}
	return fixed
}

// PollInterval 采样间隔
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Cooldown 提交后的额外等待（校验时长减去一个采样间隔）
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.ValidationDelayMs-c.PollIntervalMs) * time.Millisecond
}

// KeyDelay 按键间隔
func (c *Config) KeyDelay() time.Duration {
	return time.Duration(c.KeyDelayMs) * time.Millisecond
}

// UnsupportedExitDelay 分辨率不支持时的退出等待
func (c *Config) UnsupportedExitDelay() time.Duration {
	return time.Duration(c.UnsupportedExitDelayMs) * time.Millisecond
}

// SlotRegions 按槽位编号返回截图区域
func (c *Config) SlotRegions() [SlotCount]auto.Region {
	var out [SlotCount]auto.Region
	for i, b := range c.SlotBounds {
		out[i] = b.Region()
	}
	return out
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return NewManagerWithDir(filepath.Join(homeDir, ".fpsolver"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// NewManagerWithFile 使用指定文件创建配置管理器
func NewManagerWithFile(path string) *Manager {
	return &Manager{
		configDir:  filepath.Dir(path),
		configFile: path,
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，文件中缺省的字段保留默认值，非法值被修正
func (m *Manager) Load() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}

	if fixed := config.Validate(); len(fixed) > 0 {
		logger.Warn("配置项无效，已恢复默认值: %v", fixed)
	}
	return config, nil
}

// Save 保存配置
func (m *Manager) Save(config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*Config, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(config *Config) error {
	return defaultManager.Save(config)
}

// Clear 使用默认管理器清除配置
func Clear() error {
	return defaultManager.Clear()
}
