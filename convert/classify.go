package convert

import (
	"context"
	"errors"

	"github.com/ByLCY/zinefold/imposition"
	"github.com/ByLCY/zinefold/raster"
)

// Kind 区分错误来源：输入问题（4xx）还是内部故障（5xx）。
type Kind int

const (
	KindInternal Kind = iota
	KindBadInput
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindBadInput:
		return "bad_input"
	case KindCanceled:
		return "canceled"
	default:
		return "internal"
	}
}

// Classify maps a pipeline error to its Kind. None of them is retried.
func Classify(err error) Kind {
	var (
		pce *imposition.PageCountError
		de  *raster.DecodeError
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &pce), errors.As(err, &de),
		errors.Is(err, ErrEmptyInput), errors.Is(err, ErrNotPDF):
		return KindBadInput
	default:
		return KindInternal
	}
}
