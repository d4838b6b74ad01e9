package imposition

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

var (
	ErrNilPage   = errors.New("页面图像为空")
	ErrEmptyPage = errors.New("页面图像尺寸为 0")
	// ErrUnreadablePage 表示读取页面像素时发生 panic，例如值为 nil 的 *image.RGBA。
	ErrUnreadablePage = errors.New("页面图像无法读取")
)

// Impose 串联校验、排序与合成，返回 CanvasWidth×CanvasHeight 的画布。
// 任一步失败都不会返回部分画布。
func Impose(pages []image.Image, opts Options) (*image.RGBA, error) {
	tiles, err := Arrange(pages)
	if err != nil {
		return nil, err
	}
	return Compose(tiles, opts)
}

// Validate 要求恰好 PageCount 页。
func Validate(pages []image.Image) error {
	if len(pages) != PageCount {
		return &PageCountError{Actual: len(pages)}
	}
	return nil
}

// Arrange applies the fixed template to a validated page sequence.
func Arrange(pages []image.Image) ([]Tile, error) {
	if err := Validate(pages); err != nil {
		return nil, err
	}
	tiles := make([]Tile, PageCount)
	for i, slot := range zineTemplate {
		tiles[i] = Tile{
			Slot:     i,
			Source:   slot.Source,
			Page:     pages[slot.Source],
			Rotation: slot.Rotation,
			Rect:     SlotRect(i),
		}
	}
	return tiles, nil
}

// Compose 在白色画布上逐格粘贴。格子互不重叠，因此处理顺序不影响结果。
func Compose(tiles []Tile, opts Options) (*image.RGBA, error) {
	if len(tiles) != PageCount {
		return nil, &PageCountError{Actual: len(tiles)}
	}
	canvas := image.NewRGBA(CanvasBounds())
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	scaler := opts.scaler()
	for _, t := range tiles {
		if err := paste(canvas, t, scaler); err != nil {
			return nil, &CompositionError{Slot: t.Slot, Source: t.Source, Err: err}
		}
	}
	return canvas, nil
}

func paste(dst *image.RGBA, t Tile, scaler draw.Scaler) (err error) {
	if t.Page == nil {
		return ErrNilPage
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrUnreadablePage, rec)
		}
	}()
	src := t.Page.Bounds()
	if src.Empty() {
		return fmt.Errorf("%w: %v", ErrEmptyPage, src)
	}
	if t.Rect.Empty() || !t.Rect.In(dst.Bounds()) {
		return fmt.Errorf("区域 %v 超出画布 %v", t.Rect, dst.Bounds())
	}
	if t.Rotation != Upright && t.Rotation != UpsideDown {
		return fmt.Errorf("不支持的旋转角度 %d", t.Rotation)
	}

	// 先拉伸到格子尺寸再做点反射；缩放核是对称的，与先旋转后缩放等价。
	tile := image.NewRGBA(image.Rect(0, 0, t.Rect.Dx(), t.Rect.Dy()))
	scaler.Scale(tile, tile.Bounds(), t.Page, src, draw.Src, nil)
	blit(dst, t.Rect.Min, tile, t.Rotation)
	return nil
}

// blit copies src into dst at the given point, reflecting it through its
// centre for UpsideDown. Alpha is discarded: the canvas stays opaque.
func blit(dst *image.RGBA, at image.Point, src *image.RGBA, rot Rotation) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		sy := y
		if rot == UpsideDown {
			sy = h - 1 - y
		}
		srow := src.Pix[sy*src.Stride : sy*src.Stride+w*4]
		off := dst.PixOffset(at.X, at.Y+y)
		drow := dst.Pix[off : off+w*4]
		if rot == Upright {
			copy(drow, srow)
		} else {
			for x := 0; x < w; x++ {
				s, d := (w-1-x)*4, x*4
				drow[d], drow[d+1], drow[d+2] = srow[s], srow[s+1], srow[s+2]
			}
		}
		for i := 3; i < len(drow); i += 4 {
			drow[i] = 0xff
		}
	}
}
