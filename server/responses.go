package server

import (
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"
)

// Message is the JSON error body.
type Message struct {
	Type    string `json:"type"` // "error", etc
	Message string `json:"message"`
	Code    int    `json:"code"` // application-level code
}

// 应用层错误码，与 HTTP 状态码分开，便于前端区分具体原因。
const (
	codeInternal = iota + 1
	codeMissingFile
	codeBadExtension
	codeTooLarge
	codeNotPDF
	codePageCount
	codeDecode
	codeBusy
)

// EncodeWriteJSON encodes payload as the response body.
func EncodeWriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status) // Response Header Sent & Frozen
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] failed to write JSON to response: %v", err)
	}
}

// WriteSimpleErrorJSON wraps msg into an error Message.
func WriteSimpleErrorJSON(w http.ResponseWriter, status int, code int, msg string) {
	EncodeWriteJSON(w, status, Message{Type: "error", Message: msg, Code: code})
}

// WritePDFAttachment 以附件形式返回 PDF。
func WritePDFAttachment(w http.ResponseWriter, filename string, pdf []byte) {
	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Length", strconv.Itoa(len(pdf)))
	h.Set("Content-Disposition", contentDisposition(filename))
	w.WriteHeader(http.StatusOK) // Response Header Sent & Frozen
	if _, err := w.Write(pdf); err != nil {
		log.Printf("[ERROR] writing PDF to response: %v", err)
	}
}

func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return fmt.Sprintf("attachment; filename=%q", "zine.pdf")
}
