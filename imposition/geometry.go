package imposition

import "image"

// SectionSize 返回单格的宽高（整除，3508/4 与 2480/2 恰好整除）。
func SectionSize() (width, height int) {
	return CanvasWidth / Columns, CanvasHeight / Rows
}

// SlotRect returns the canvas region of output slot i, row-major:
// slots 0-3 form the top row and 4-7 the bottom row.
func SlotRect(i int) image.Rectangle {
	w, h := SectionSize()
	col, row := i%Columns, i/Columns
	return image.Rect(col*w, row*h, (col+1)*w, (row+1)*h)
}

// CanvasBounds 返回整张画布的区域。
func CanvasBounds() image.Rectangle {
	return image.Rect(0, 0, CanvasWidth, CanvasHeight)
}
