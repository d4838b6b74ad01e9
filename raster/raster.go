// Package raster decodes PDF manuscripts into page images.
package raster

import (
	"context"
	"fmt"
	"image"
)

// Rasterizer 将文档字节解码为按页序排列的图像。
type Rasterizer interface {
	Rasterize(ctx context.Context, doc []byte) ([]image.Image, error)
}

// PageCounter 在光栅化之前读取页数。
type PageCounter interface {
	CountPages(doc []byte) (int, error)
}

// DecodeError 表示输入无法作为 PDF 解码（损坏、加密或不是 PDF）。
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("解码 PDF 失败（%s）: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
