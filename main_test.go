package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/zinefold/config"
	"github.com/ByLCY/zinefold/imposition"
	"github.com/ByLCY/zinefold/raster"
)

// writeManuscript 生成 n 页 A6 原稿，每页色块位置不同。
func writeManuscript(t *testing.T, n int) string {
	t.Helper()
	var buf bytes.Buffer
	writer := pdf.New(&buf, 105, 148, nil)
	for i := 0; i < n; i++ {
		if i > 0 {
			writer.NewPage(105, 148)
		}
		c := canvas.New(105, 148)
		ctx := canvas.NewContext(c)
		ctx.SetFillColor(canvas.Black)
		ctx.DrawPath(5+float64(i)*10, 5, canvas.Rectangle(8, 8))
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("生成原稿失败: %v", err)
	}
	path := filepath.Join(t.TempDir(), "manuscript.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("写入原稿失败: %v", err)
	}
	return path
}

func TestRunEndToEnd(t *testing.T) {
	cfg := config.Default()
	cfg.DPI = 72
	conv := newConverter(cfg)

	dir := t.TempDir()
	out := filepath.Join(dir, "out", "zine.pdf")
	debug := filepath.Join(dir, "debug", "plan.json")
	if err := run(context.Background(), conv, writeManuscript(t, 8), out, debug); err != nil {
		t.Fatalf("run error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("读取输出失败: %v", err)
	}
	n, err := (&raster.PDFCPUCounter{Relaxed: true}).CountPages(data)
	if err != nil {
		t.Fatalf("输出 PDF 无法解析: %v", err)
	}
	if n != 1 {
		t.Fatalf("输出应为单页，实际 %d 页", n)
	}

	raw, err := os.ReadFile(debug)
	if err != nil {
		t.Fatalf("读取调试 JSON 失败: %v", err)
	}
	var plan imposition.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		t.Fatalf("解析调试 JSON 失败: %v", err)
	}
	if len(plan.Tiles) != imposition.PageCount || plan.Tiles[0].Page != 5 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestRunRejectsWrongPageCount(t *testing.T) {
	conv := newConverter(config.Default())
	out := filepath.Join(t.TempDir(), "zine.pdf")
	err := run(context.Background(), conv, writeManuscript(t, 7), out, "")
	var pce *imposition.PageCountError
	if !errors.As(err, &pce) || pce.Actual != 7 {
		t.Fatalf("期望 PageCountError{7}，实际 %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("失败时不应写出文件")
	}
}
