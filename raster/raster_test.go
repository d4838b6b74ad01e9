package raster

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/ByLCY/zinefold/imposition"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Format
	}{
		{"header", []byte("%PDF-1.7\n..."), PDF},
		{"junk before header", append([]byte("\x00\x00junk"), []byte("%PDF-1.4")...), PDF},
		{"png", []byte("\x89PNG\r\n\x1a\n"), Unknown},
		{"empty", nil, Unknown},
	}
	for _, tc := range cases {
		if got := DetectBytes(tc.data); got != tc.want {
			t.Fatalf("%s: DetectBytes = %v, want %v", tc.name, got, tc.want)
		}
	}
	if Detect("Zine.PDF") != PDF || Detect("zine.pdf.png") != Unknown || Detect("zine") != Unknown {
		t.Fatalf("Detect by extension mismatch")
	}
	if PDF.String() != "PDF" || Unknown.String() != "Unknown" {
		t.Fatalf("Format.String mismatch")
	}
}

func TestCountPages(t *testing.T) {
	c := &PDFCPUCounter{Relaxed: true}
	n, err := c.CountPages(buildPDF(t, 8))
	if err != nil {
		t.Fatalf("CountPages error: %v", err)
	}
	if n != 8 {
		t.Fatalf("CountPages = %d, want 8", n)
	}
}

func TestCountPagesGarbage(t *testing.T) {
	c := &PDFCPUCounter{Relaxed: true}
	for _, data := range [][]byte{nil, []byte("definitely not a pdf")} {
		_, err := c.CountPages(data)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("期望 DecodeError，实际 %v", err)
		}
	}
}

func TestFitzRasterize(t *testing.T) {
	r := NewFitzRasterizer(36)
	pages, err := r.Rasterize(context.Background(), buildPDF(t, 3))
	if err != nil {
		t.Fatalf("Rasterize error: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, want 3", len(pages))
	}
	for i, p := range pages {
		if p.Bounds().Empty() {
			t.Fatalf("page %d is empty", i)
		}
	}
}

// firstRedColumn 返回 row 行中第一个偏红像素的 x，找不到返回 -1。
func firstRedColumn(img image.Image, row int) int {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		r, g, bl, _ := img.At(x, b.Min.Y+row).RGBA()
		if r>>8 > 200 && g>>8 < 100 && bl>>8 < 100 {
			return x - b.Min.X
		}
	}
	return -1
}

// TestFitzRasterizePreservesOrder 第 i 页色块位于 x=10+i mm，渲染后应逐页右移。
func TestFitzRasterizePreservesOrder(t *testing.T) {
	const dpi = 100
	pages, err := NewFitzRasterizer(dpi).Rasterize(context.Background(), buildPDF(t, 4))
	if err != nil {
		t.Fatalf("Rasterize error: %v", err)
	}
	prev := -1
	for i, p := range pages {
		// 色块纵向覆盖距底边 10-40mm，取其中线
		row := int(float64(p.Bounds().Dy()) * (140 - 25) / 140)
		x := firstRedColumn(p, row)
		if x < 0 {
			t.Fatalf("page %d: 没有找到色块", i)
		}
		wantX := (10 + float64(i)) / 25.4 * dpi
		if diff := float64(x) - wantX; diff < -2 || diff > 2 {
			t.Fatalf("page %d: 色块起点 x=%d，期望约 %.1f", i, x, wantX)
		}
		if x <= prev {
			t.Fatalf("page %d: 色块未右移 (%d <= %d)，页序被打乱", i, x, prev)
		}
		prev = x
	}
}

func TestFitzRasterizePageLimit(t *testing.T) {
	r := &FitzRasterizer{DPI: 36, PageLimit: 2}
	_, err := r.Rasterize(context.Background(), buildPDF(t, 3))
	var pce *imposition.PageCountError
	if !errors.As(err, &pce) || pce.Actual != 3 {
		t.Fatalf("期望 PageCountError{3}，实际 %v", err)
	}
}

func TestFitzRasterizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFitzRasterizer(36).Rasterize(ctx, buildPDF(t, 2))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("期望 context.Canceled，实际 %v", err)
	}
}

func TestFitzRasterizeGarbage(t *testing.T) {
	_, err := NewFitzRasterizer(0).Rasterize(context.Background(), []byte("not a pdf at all"))
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("期望 DecodeError，实际 %v", err)
	}
}
