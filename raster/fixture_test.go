package raster

import (
	"bytes"
	"testing"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

// buildPDF 生成一个每页带色块的 n 页 PDF，页面尺寸单位为 mm。
func buildPDF(t *testing.T, n int) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := pdf.New(&buf, 100, 140, nil)
	for i := 0; i < n; i++ {
		if i > 0 {
			writer.NewPage(100, 140)
		}
		c := canvas.New(100, 140)
		ctx := canvas.NewContext(c)
		ctx.SetFillColor(canvas.Red)
		ctx.DrawPath(10+float64(i), 10, canvas.Rectangle(20, 30))
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("生成测试 PDF 失败: %v", err)
	}
	return buf.Bytes()
}
