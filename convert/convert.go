// Package convert runs the manuscript-to-zine pipeline:
// detect -> preflight -> rasterize -> impose -> render.
package convert

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/ByLCY/zinefold/binding"
	"github.com/ByLCY/zinefold/imposition"
	"github.com/ByLCY/zinefold/raster"
	"github.com/ByLCY/zinefold/renderer"
)

var (
	ErrEmptyInput = errors.New("上传的文件为空")
	ErrNotPDF     = errors.New("上传的文件不是 PDF")
)

// Input is one uploaded manuscript.
type Input struct {
	Name string // 原始文件名，仅用于生成输出文件名
	Data []byte
}

// Output 是一次转换的结果。
type Output struct {
	Filename string
	Title    string
	PDF      []byte
	Plan     *imposition.Plan
}

// Options 配置输出命名与合成参数。
type Options struct {
	FilenameTemplate string // 例如 "${name}-zine.pdf"
	TitleTemplate    string
	Creator          string
	Imposition       imposition.Options
}

const (
	DefaultFilenameTemplate = "${name}-zine.pdf"
	DefaultTitleTemplate    = "${name}"
)

// Converter 串联各阶段。Counter 为空时跳过预检，由拼版阶段校验页数。
type Converter struct {
	Counter    raster.PageCounter
	Rasterizer raster.Rasterizer
	Renderer   renderer.Renderer
	Options    Options
}

// Convert runs the whole pipeline. It never returns a partial Output.
func (c *Converter) Convert(ctx context.Context, in Input) (*Output, error) {
	if c.Rasterizer == nil || c.Renderer == nil {
		return nil, fmt.Errorf("converter 未配置光栅化器或渲染器")
	}
	if len(in.Data) == 0 {
		return nil, ErrEmptyInput
	}
	if raster.DetectBytes(in.Data) != raster.PDF {
		return nil, ErrNotPDF
	}

	if c.Counter != nil {
		n, err := c.Counter.CountPages(in.Data)
		if err != nil {
			return nil, err
		}
		if n != imposition.PageCount {
			return nil, &imposition.PageCountError{Actual: n}
		}
	}

	pages, err := c.Rasterizer.Rasterize(ctx, in.Data)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.compose(pages, in.Name)
}

func (c *Converter) compose(pages []image.Image, name string) (*Output, error) {
	plan, err := imposition.Describe(pages)
	if err != nil {
		return nil, err
	}
	canvas, err := imposition.Impose(pages, c.Options.Imposition)
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"name":  binding.SanitizeName(name),
		"pages": len(pages),
	}
	title := binding.Interpolate(orDefault(c.Options.TitleTemplate, DefaultTitleTemplate), data)
	pdf, err := c.Renderer.Render(canvas, renderer.Meta{
		Title:    title,
		Subject:  "zine",
		Creator:  c.Options.Creator,
		Keywords: []string{"zine", "imposition"},
	})
	if err != nil {
		return nil, err
	}
	filename := binding.Interpolate(orDefault(c.Options.FilenameTemplate, DefaultFilenameTemplate), data)
	return &Output{
		Filename: filename,
		Title:    title,
		PDF:      pdf,
		Plan:     plan,
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
