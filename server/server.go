package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"

	"golang.org/x/sync/semaphore"

	"github.com/ByLCY/zinefold/config"
	"github.com/ByLCY/zinefold/convert"
	"github.com/ByLCY/zinefold/imposition"
	"github.com/ByLCY/zinefold/raster"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// multipartMemory 以内的上传留在内存，超出部分由 mime/multipart 写入临时文件。
const multipartMemory = 8 << 20

// Converter is the pipeline the handlers call.
type Converter interface {
	Convert(ctx context.Context, in convert.Input) (*convert.Output, error)
}

// Server 持有配置、转换管线与并发限制。
type Server struct {
	cfg       config.Config
	converter Converter
	sem       *semaphore.Weighted
}

// New creates a Server. cfg is expected to be validated.
func New(cfg config.Config, c Converter) *Server {
	workers := cfg.MaxConcurrentConversions
	if workers <= 0 {
		workers = 1
	}
	return &Server{cfg: cfg, converter: c, sem: semaphore.NewWeighted(workers)}
}

// Handler builds the routed, wrapped http.Handler.
func (s *Server) Handler() http.Handler {
	r := NewRouter(RecoverWrapper, AccessLogWrapper, CORSWrapper(s.cfg.AllowedOrigins))
	r.HandleFunc("GET /{$}", s.handleIndex)
	r.HandleFunc("GET /healthz", s.handleHealth)
	r.HandleFunc("POST /convert", s.handleConvert)
	return r.Handler()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, map[string]any{
		"AppName":     s.cfg.AppName,
		"PageCount":   imposition.PageCount,
		"MaxUploadMB": s.cfg.MaxUploadBytes >> 20,
	})
	if err != nil {
		log.Printf("[ERROR] rendering index: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	EncodeWriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.MaxUploadBytes {
		WriteSimpleErrorJSON(w, http.StatusRequestEntityTooLarge, codeTooLarge, "文件过大")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			WriteSimpleErrorJSON(w, http.StatusRequestEntityTooLarge, codeTooLarge, "文件过大")
			return
		}
		WriteSimpleErrorJSON(w, http.StatusBadRequest, codeMissingFile, "无法解析上传表单")
		return
	}
	defer func() {
		// 释放 multipart 写入磁盘的临时文件
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Printf("[ERROR] removing multipart temp files: %v", err)
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteSimpleErrorJSON(w, http.StatusBadRequest, codeMissingFile, "缺少 file 字段")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		WriteSimpleErrorJSON(w, http.StatusBadRequest, codeMissingFile, "未选择文件")
		return
	}
	if raster.Detect(header.Filename) != raster.PDF {
		WriteSimpleErrorJSON(w, http.StatusBadRequest, codeBadExtension, "只接受 .pdf 文件")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		WriteSimpleErrorJSON(w, http.StatusBadRequest, codeMissingFile, "读取上传文件失败")
		return
	}

	if err := s.sem.Acquire(r.Context(), 1); err != nil {
		WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, codeBusy, "服务繁忙，请稍后重试")
		return
	}
	defer s.sem.Release(1)

	out, err := s.converter.Convert(r.Context(), convert.Input{Name: header.Filename, Data: data})
	if err != nil {
		s.writeConvertError(w, header.Filename, err)
		return
	}
	log.Printf("[INFO] converted %q -> %q (%d bytes)", header.Filename, out.Filename, len(out.PDF))
	WritePDFAttachment(w, out.Filename, out.PDF)
}

// writeConvertError 将管线错误映射为 HTTP 状态：输入问题 4xx，内部故障 5xx。
func (s *Server) writeConvertError(w http.ResponseWriter, filename string, err error) {
	var (
		pce *imposition.PageCountError
		de  *raster.DecodeError
	)
	switch kind := convert.Classify(err); {
	case errors.Is(err, convert.ErrNotPDF):
		WriteSimpleErrorJSON(w, http.StatusUnsupportedMediaType, codeNotPDF, err.Error())
	case errors.As(err, &pce):
		WriteSimpleErrorJSON(w, http.StatusUnprocessableEntity, codePageCount, err.Error())
	case errors.As(err, &de):
		log.Printf("[INFO] decoding %q failed: %v", filename, err)
		msg := "无法解析 PDF 文件"
		if errors.Is(err, raster.ErrPasswordProtected) {
			msg = "PDF 受密码保护"
		}
		WriteSimpleErrorJSON(w, http.StatusUnprocessableEntity, codeDecode, msg)
	case kind == convert.KindBadInput:
		WriteSimpleErrorJSON(w, http.StatusBadRequest, codeMissingFile, err.Error())
	case kind == convert.KindCanceled:
		log.Printf("[INFO] conversion of %q canceled: %v", filename, err)
		WriteSimpleErrorJSON(w, http.StatusServiceUnavailable, codeBusy, "请求已取消")
	default:
		log.Printf("[ERROR] converting %q: %v", filename, err)
		WriteSimpleErrorJSON(w, http.StatusInternalServerError, codeInternal, "转换失败")
	}
}
