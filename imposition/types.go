package imposition

// 该文件定义拼版所需的常量、槽位与结果描述，供拼版计算、合成与调试 JSON 共用。

import "image"

// 画布与网格尺寸（像素）。3508×2480 即 300 DPI 下的横向纸张。
const (
	PageCount    = 8
	CanvasWidth  = 3508
	CanvasHeight = 2480
	Columns      = 4
	Rows         = 2
	DPI          = 300
)

// Rotation 以角度表示页面旋转，只允许 0 与 180。
type Rotation int

const (
	Upright    Rotation = 0
	UpsideDown Rotation = 180
)

// Slot 描述输出网格中的一个位置取哪一页、如何旋转。
type Slot struct {
	Source   int      `json:"source"`
	Rotation Rotation `json:"rotation"`
}

// Tile 是模板应用到具体页面后的结果：页面、旋转角度与画布上的区域。
type Tile struct {
	Slot     int             `json:"slot"`
	Source   int             `json:"source"`
	Page     image.Image     `json:"-"`
	Rotation Rotation        `json:"rotation"`
	Rect     image.Rectangle `json:"-"`
}

// Plan 记录一次拼版的几何信息，便于调试输出。
type Plan struct {
	CanvasWidth   int        `json:"canvasWidth"`
	CanvasHeight  int        `json:"canvasHeight"`
	SectionWidth  int        `json:"sectionWidth"`
	SectionHeight int        `json:"sectionHeight"`
	DPI           int        `json:"dpi"`
	WidthMM       float64    `json:"widthMM"`
	HeightMM      float64    `json:"heightMM"`
	Tiles         []TilePlan `json:"tiles"`
}

// TilePlan 是 Tile 的 JSON 友好形式。Page 为 1 起始的原稿页码。
type TilePlan struct {
	Slot         int      `json:"slot"`
	Source       int      `json:"source"`
	Page         int      `json:"page"`
	Rotation     Rotation `json:"rotation"`
	X            int      `json:"x"`
	Y            int      `json:"y"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	SourceWidth  int      `json:"sourceWidth"`
	SourceHeight int      `json:"sourceHeight"`
}
