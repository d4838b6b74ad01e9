package imposition

import "fmt"

// PageCountError 表示输入页数不是 PageCount。
type PageCountError struct {
	Actual int
}

func (e *PageCountError) Error() string {
	return fmt.Sprintf("页数必须为 %d，实际为 %d", PageCount, e.Actual)
}

// CompositionError wraps a failure while scaling, rotating or pasting one tile.
type CompositionError struct {
	Slot   int
	Source int
	Err    error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("合成第 %d 格（原稿第 %d 页）失败: %v", e.Slot, e.Source+1, e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }
