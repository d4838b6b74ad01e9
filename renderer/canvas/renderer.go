package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/zinefold/imposition"
	"github.com/ByLCY/zinefold/renderer"
)

// Renderer places a raster canvas on a single PDF page via github.com/tdewolff/canvas.
type Renderer struct {
	dpi float64
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer that maps image pixels to paper at dpi.
func NewRenderer(dpi float64) *Renderer {
	if dpi <= 0 {
		dpi = imposition.DPI
	}
	return &Renderer{dpi: dpi}
}

// Render 输出一页 PDF，页面物理尺寸由像素与 DPI 决定。
func (r *Renderer) Render(img image.Image, meta renderer.Meta) ([]byte, error) {
	if img == nil {
		return nil, &renderer.EncodeError{Err: fmt.Errorf("画布为空")}
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, &renderer.EncodeError{Err: fmt.Errorf("画布尺寸为 0")}
	}
	width, height := r.PageSize(img)

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	applyMeta(writer, meta)

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.DrawImage(0, 0, img, canvas.DPI(r.dpi))
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, &renderer.EncodeError{Err: fmt.Errorf("写入 PDF 失败: %w", err)}
	}
	return buf.Bytes(), nil
}

// PageSize 返回图像在该渲染器下的页面尺寸（mm）。
func (r *Renderer) PageSize(img image.Image) (width, height float64) {
	b := img.Bounds()
	return imposition.PxToMM(b.Dx(), r.dpi), imposition.PxToMM(b.Dy(), r.dpi)
}

func applyMeta(writer *pdf.PDF, meta renderer.Meta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}
