// Package testimg 生成测试用的合成图像（文字、纯色、反色、噪声）
package testimg

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	fontOnce sync.Once
	textFont *truetype.Font
)

func loadFont() *truetype.Font {
	fontOnce.Do(func() {
		f, err := freetype.ParseFont(gobold.TTF)
		if err != nil {
			panic("testimg: 解析内置字体失败: " + err.Error())
		}
		textFont = f
	})
	return textFont
}

// Text 在白底上用黑色绘制文字，字号为高度的 70%
func Text(s string, w, h int) *image.RGBA {
	img := Solid(w, h, color.White)
	size := float64(h) * 0.7

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(loadFont())
	c.SetFontSize(size)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.Black)
	c.SetHinting(font.HintingFull)

	pt := freetype.Pt(w/8, h/8+int(c.PointToFixed(size)>>6))
	if _, err := c.DrawString(s, pt); err != nil {
		panic("testimg: 绘制文字失败: " + err.Error())
	}
	return img
}

// Solid 纯色图像
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// Invert 反色
func Invert(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			dst.SetRGBA(x, y, color.RGBA{
				R: 255 - uint8(r>>8),
				G: 255 - uint8(g>>8),
				B: 255 - uint8(bl>>8),
				A: uint8(a >> 8),
			})
		}
	}
	return dst
}

// Noise 固定种子的随机灰度噪声
func Noise(seed int64, w, h int) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(rng.Intn(256))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// Scale 最近邻缩放（模拟截图与模板尺寸不一致）
func Scale(src image.Image, w, h int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		sy := b.Min.Y + y*b.Dy()/h
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}
