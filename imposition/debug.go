package imposition

import (
	"encoding/json"
	"image"
	"os"
)

// Describe 生成拼版计划，不做任何像素操作。
func Describe(pages []image.Image) (*Plan, error) {
	tiles, err := Arrange(pages)
	if err != nil {
		return nil, err
	}
	w, h := SectionSize()
	wmm, hmm := CanvasSizeMM()
	plan := &Plan{
		CanvasWidth:   CanvasWidth,
		CanvasHeight:  CanvasHeight,
		SectionWidth:  w,
		SectionHeight: h,
		DPI:           DPI,
		WidthMM:       wmm,
		HeightMM:      hmm,
		Tiles:         make([]TilePlan, 0, len(tiles)),
	}
	for _, t := range tiles {
		tp := TilePlan{
			Slot:     t.Slot,
			Source:   t.Source,
			Page:     t.Source + 1,
			Rotation: t.Rotation,
			X:        t.Rect.Min.X,
			Y:        t.Rect.Min.Y,
			Width:    t.Rect.Dx(),
			Height:   t.Rect.Dy(),
		}
		if b, ok := pageBounds(t.Page); ok {
			tp.SourceWidth = b.Dx()
			tp.SourceHeight = b.Dy()
		}
		plan.Tiles = append(plan.Tiles, tp)
	}
	return plan, nil
}

// pageBounds 读取页面尺寸；页面为空或读取时 panic 则返回 false。
func pageBounds(page image.Image) (b image.Rectangle, ok bool) {
	if page == nil {
		return b, false
	}
	defer func() {
		if recover() != nil {
			b, ok = image.Rectangle{}, false
		}
	}()
	return page.Bounds(), true
}

// WriteDebugJSON 将拼版计划输出为 JSON，便于调试或可视化。
func WriteDebugJSON(plan *Plan, path string) error {
	if plan == nil {
		return nil
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
