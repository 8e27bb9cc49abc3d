// Package reference 加载并持有参考图像：活动检测用的标题模板，
// 以及每个指纹变体的完整模板和 4 个按选择顺序排列的答案碎片
package reference

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // 注册 PNG 解码器
	"os"
	"path/filepath"
	"strconv"
	"sync"

	_ "golang.org/x/image/bmp" // 注册 BMP 解码器
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // 注册 WebP 解码器
)

// FragmentCount 每个变体的答案碎片数量
const FragmentCount = 4

// 参考目录布局
const (
	HeaderFile = "header.png"
	FullFile   = "full.png"
)

// Variant 指纹变体
type Variant struct {
	// Number 变体编号，从 1 开始，与目录名一致
	Number int
	// Full 完整指纹模板
	Full image.Image
	// Fragments 答案碎片模板，顺序即之后的选择顺序
	Fragments [FragmentCount]image.Image
}

// Library 参考图像库，加载后只读
type Library struct {
	header   image.Image
	variants []Variant
}

// NewLibrary 校验并创建参考图像库
func NewLibrary(header image.Image, variants []Variant) (*Library, error) {
	if header == nil {
		return nil, errors.New("标题模板为空")
	}
	if len(variants) == 0 {
		return nil, errors.New("至少需要一个指纹变体")
	}
	copied := make([]Variant, len(variants))
	copy(copied, variants)
	for i, v := range copied {
		if v.Full == nil {
			return nil, fmt.Errorf("变体 %d 缺少完整模板", v.Number)
		}
		for j, f := range v.Fragments {
			if f == nil {
				return nil, fmt.Errorf("变体 %d 缺少碎片 %d", v.Number, j+1)
			}
		}
		if v.Number == 0 {
			copied[i].Number = i + 1
		}
	}
	return &Library{header: header, variants: copied}, nil
}

// Header 标题模板
func (l *Library) Header() image.Image {
	return l.header
}

// Len 变体数量
func (l *Library) Len() int {
	return len(l.variants)
}

// Variant 按下标 (0..Len-1) 获取变体
func (l *Library) Variant(i int) Variant {
	return l.variants[i]
}

// Templates 按固定顺序返回所有变体的完整模板
func (l *Library) Templates() []image.Image {
	out := make([]image.Image, len(l.variants))
	for i, v := range l.variants {
		out[i] = v.Full
	}
	return out
}

// Fragments 返回下标 i 的变体的碎片模板
func (l *Library) Fragments(i int) [FragmentCount]image.Image {
	return l.variants[i].Fragments
}

// All 返回库中的所有图像（用于预计算缓存）
func (l *Library) All() []image.Image {
	out := []image.Image{l.header}
	for _, v := range l.variants {
		out = append(out, v.Full)
		out = append(out, v.Fragments[:]...)
	}
	return out
}

// Load 从目录加载参考图像
//
// 目录布局:
//
//	<dir>/header.png
//	<dir>/<i>/full.png
//	<dir>/<i>/1.png … 4.png     (i = 1..count)
//
// 文件按内容解码，支持 PNG、BMP、WebP。各变体并发加载，多个变体失败时返回编号最小的那个错误。
func Load(dir string, count int) (*Library, error) {
	if count < 1 {
		return nil, fmt.Errorf("变体数量无效: %d", count)
	}

	header, err := ReadImage(filepath.Join(dir, HeaderFile))
	if err != nil {
		return nil, err
	}

	variants := make([]Variant, count)
	errs := make([]error, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			variants[i], errs[i] = loadVariant(dir, i+1)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return NewLibrary(header, variants)
}

func loadVariant(dir string, number int) (Variant, error) {
	vdir := filepath.Join(dir, strconv.Itoa(number))
	v := Variant{Number: number}

	full, err := ReadImage(filepath.Join(vdir, FullFile))
	if err != nil {
		return v, err
	}
	v.Full = full

	for j := 0; j < FragmentCount; j++ {
		frag, err := ReadImage(filepath.Join(vdir, strconv.Itoa(j+1)+".png"))
		if err != nil {
			return v, err
		}
		v.Fragments[j] = frag
	}
	return v, nil
}

// ReadImage 读取图像文件并转换为 *image.RGBA
func ReadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取参考图像 %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("无法解码参考图像 %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA 复制为原点在 (0,0) 的 *image.RGBA
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
