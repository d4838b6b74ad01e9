package raster

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a detected input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// headerWindow 是查找 %PDF- 头的范围；阅读器允许头部之前有少量垃圾字节。
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

// DetectBytes determines the format from the leading bytes.
func DetectBytes(data []byte) Format {
	head := data
	if len(head) > headerWindow {
		head = head[:headerWindow]
	}
	if bytes.Contains(head, pdfMagic) {
		return PDF
	}
	return Unknown
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	if strings.ToLower(filepath.Ext(filename)) == ".pdf" {
		return PDF
	}
	return Unknown
}
