package imposition

// This file defines unit-safe lengths for converting the pixel canvas into a
// physical page size.

// Unit represents the unit a length value was given in.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers
	UnitMM               // millimeters
	UnitIN               // inches
	UnitPT               // points
	UnitPX               // device pixels, needs a DPI
)

// Conversion constants between pt, in and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	InToMm = 25.4
)

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToMM converts the length to millimeters. dpi is only consulted for UnitPX.
func (l Length) ToMM(dpi float64) float64 {
	switch l.Unit {
	case UnitIN:
		return l.Value * InToMm
	case UnitPT:
		return l.Value * PtToMm
	case UnitPX:
		if dpi <= 0 {
			return 0
		}
		return l.Value / dpi * InToMm
	default:
		// mm 与无单位数值原样返回
		return l.Value
	}
}

// PxToMM 将像素按给定 DPI 换算为毫米。
func PxToMM(px int, dpi float64) float64 {
	return Length{Value: float64(px), Unit: UnitPX}.ToMM(dpi)
}

// CanvasSizeMM 返回画布在 DPI 下的物理尺寸（约 297×210 mm）。
func CanvasSizeMM() (width, height float64) {
	return PxToMM(CanvasWidth, DPI), PxToMM(CanvasHeight, DPI)
}
