package raster

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/ByLCY/zinefold/imposition"
)

// FitzRasterizer renders pages with MuPDF through go-fitz.
type FitzRasterizer struct {
	DPI float64
	// PageLimit 大于 0 时，页数超过上限的文档在渲染前即被拒绝。
	PageLimit int
}

var _ Rasterizer = (*FitzRasterizer)(nil)

// NewFitzRasterizer 创建按 dpi 渲染的光栅化器，dpi<=0 时使用 imposition.DPI。
func NewFitzRasterizer(dpi float64) *FitzRasterizer {
	if dpi <= 0 {
		dpi = imposition.DPI
	}
	return &FitzRasterizer{DPI: dpi}
}

// Rasterize decodes doc and renders every page in order. ctx is checked
// between pages.
func (r *FitzRasterizer) Rasterize(ctx context.Context, doc []byte) ([]image.Image, error) {
	if len(doc) == 0 {
		return nil, &DecodeError{Op: "open", Err: fmt.Errorf("文档为空")}
	}
	d, err := fitz.NewFromMemory(doc)
	if err != nil {
		return nil, &DecodeError{Op: "open", Err: err}
	}
	defer d.Close()

	n := d.NumPage()
	if n <= 0 {
		return nil, &DecodeError{Op: "open", Err: fmt.Errorf("文档没有页面")}
	}
	if r.PageLimit > 0 && n > r.PageLimit {
		return nil, &imposition.PageCountError{Actual: n}
	}

	dpi := r.DPI
	if dpi <= 0 {
		dpi = imposition.DPI
	}
	pages := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := d.ImageDPI(i, dpi)
		if err != nil {
			return nil, &DecodeError{Op: fmt.Sprintf("render page %d", i+1), Err: err}
		}
		pages = append(pages, img)
	}
	return pages, nil
}
