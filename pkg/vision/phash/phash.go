// Package phash 实现基于 DCT 的感知哈希
package phash

import (
	"image"
	"image/color"
	"math/bits"
	"reflect"
	"sync"

	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// hashSize 哈希前缩放到的边长
	hashSize = 32
	// lowSize 保留的低频块边长，lowSize*lowSize 即哈希位数
	lowSize = 8
)

// Hash 64 位感知哈希
type Hash uint64

// Compute 计算图像的感知哈希
//
// 步骤：双线性缩放到 32x32，取灰度，二维 DCT-II，取左上 8x8 低频块，
// 以去掉直流分量后的均值为阈值逐位二值化。
func Compute(img image.Image) Hash {
	scaled := resize.Resize(hashSize, hashSize, img, resize.Bilinear)
	b := scaled.Bounds()

	vals := make([]float64, hashSize*hashSize)
	for y := 0; y < hashSize; y++ {
		for x := 0; x < hashSize; x++ {
			g := color.GrayModel.Convert(scaled.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			vals[y*hashSize+x] = float64(g.Y)
		}
	}
	dct2D(vals, hashSize)

	var total float64
	for y := 0; y < lowSize; y++ {
		for x := 0; x < lowSize; x++ {
			total += vals[y*hashSize+x]
		}
	}
	total -= vals[0]
	avg := total / float64(lowSize*lowSize-1)

	var h Hash
	for y := 0; y < lowSize; y++ {
		for x := 0; x < lowSize; x++ {
			if vals[y*hashSize+x] > avg {
				h |= 1 << uint(y*lowSize+x)
			}
		}
	}
	return h
}

// Distance 归一化汉明距离 [0, 1]
func Distance(a, b Hash) float64 {
	return float64(bits.OnesCount64(uint64(a^b))) / float64(lowSize*lowSize)
}

// dct2D 对 n*n 行优先矩阵原地做二维 DCT（先行后列）
func dct2D(vals []float64, n int) {
	dct := fourier.NewDCT(n)
	src := make([]float64, n)
	dst := make([]float64, n)

	for y := 0; y < n; y++ {
		copy(src, vals[y*n:(y+1)*n])
		dct.Transform(dst, src)
		copy(vals[y*n:(y+1)*n], dst)
	}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			src[y] = vals[y*n+x]
		}
		dct.Transform(dst, src)
		for y := 0; y < n; y++ {
			vals[y*n+x] = dst[y]
		}
	}
}

// Metric 感知哈希距离度量
// 参考图像可以通过 Pin 预先计算哈希，截图每次重新计算
type Metric struct {
	mu     sync.RWMutex
	pinned map[image.Image]Hash
}

// NewMetric 创建度量
func NewMetric() *Metric {
	return &Metric{pinned: make(map[image.Image]Hash)}
}

// Pin 缓存只读图像的哈希，调用后不得再修改这些图像
func (m *Metric) Pin(images ...image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, img := range images {
		if img != nil && reflect.TypeOf(img).Comparable() {
			m.pinned[img] = Compute(img)
		}
	}
}

// Distance 计算两张图像的感知哈希距离
func (m *Metric) Distance(a, b image.Image) float64 {
	return Distance(m.hash(a), m.hash(b))
}

func (m *Metric) hash(img image.Image) Hash {
	if img == nil {
		return 0
	}
	if !reflect.TypeOf(img).Comparable() {
		return Compute(img)
	}
	m.mu.RLock()
	h, ok := m.pinned[img]
	m.mu.RUnlock()
	if ok {
		return h
	}
	return Compute(img)
}
