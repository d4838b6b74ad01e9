package raster

import (
	"bytes"
	"errors"
	"fmt"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrPasswordProtected 表示文档需要密码。
var ErrPasswordProtected = errors.New("PDF 受密码保护")

// PDFCPUCounter reads the page tree with pdfcpu without rendering anything.
type PDFCPUCounter struct {
	Relaxed bool
}

var _ PageCounter = (*PDFCPUCounter)(nil)

func (c *PDFCPUCounter) CountPages(doc []byte) (int, error) {
	if len(doc) == 0 {
		return 0, &DecodeError{Op: "preflight", Err: fmt.Errorf("文档为空")}
	}
	conf := model.NewDefaultConfiguration()
	if c.Relaxed {
		conf.ValidationMode = model.ValidationRelaxed
	}
	ctx, err := pdfapi.ReadValidateAndOptimize(bytes.NewReader(doc), conf)
	if err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			err = ErrPasswordProtected
		}
		return 0, &DecodeError{Op: "preflight", Err: err}
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, &DecodeError{Op: "preflight", Err: err}
	}
	return ctx.PageCount, nil
}
