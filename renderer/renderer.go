package renderer

import (
	"fmt"
	"image"
)

// Renderer 将合成好的画布输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(img image.Image, meta Meta) ([]byte, error)
}

// Meta 保存输出文件的元信息。
type Meta struct {
	Title    string   `json:"title"`
	Subject  string   `json:"subject"`
	Author   string   `json:"author"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// EncodeError wraps a failure of the output encoder.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("编码输出失败: %v", e.Err) }

func (e *EncodeError) Unwrap() error { return e.Err }
