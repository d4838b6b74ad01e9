package server

import (
	"log"
	"net/http"
	"runtime/debug"
	"slices"
	"time"
)

// RecoverWrapper turns a panic into a 500 JSON response.
var RecoverWrapper = WrapperFunc(func(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := newStatusWriter(w)
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[PANIC] recovered: %v\n%s", rec, debug.Stack())
				if sw.Written() {
					// 响应头已发出，只能放弃这次响应
					return
				}
				WriteSimpleErrorJSON(sw, http.StatusInternalServerError, codeInternal, "internal server error")
			}
		}()
		inner.ServeHTTP(sw, r)
	})
})

// AccessLogWrapper logs one line per request.
var AccessLogWrapper = WrapperFunc(func(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)
		inner.ServeHTTP(sw, r)
		log.Printf("[INFO] %s %s %d %dB %s", r.Method, r.URL.Path, sw.Status(), sw.BytesWritten(), time.Since(start).Round(time.Millisecond))
	})
})

// CORSWrapper 允许跨域上传。origins 包含 "*" 时对所有来源开放。
func CORSWrapper(origins []string) HandlerWrapper {
	anyOrigin := slices.Contains(origins, "*")
	return WrapperFunc(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()
			switch {
			case anyOrigin:
				h.Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(origins, origin):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Access-Control-Expose-Headers", "Content-Disposition")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	})
}

// statusWriter records the status code and counts body bytes.
type statusWriter struct {
	http.ResponseWriter
	status int
	n      int64
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

// Write implements io.Writer
func (sw *statusWriter) Write(p []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(p)
	sw.n += int64(n) // Write() can be called multiple times
	return n, err
}

func (sw *statusWriter) Status() int {
	if sw.status == 0 {
		return http.StatusOK
	}
	return sw.status
}

// Written reports whether the header has been sent.
func (sw *statusWriter) Written() bool { return sw.status != 0 }

func (sw *statusWriter) BytesWritten() int64 { return sw.n }

func (sw *statusWriter) Unwrap() http.ResponseWriter { return sw.ResponseWriter }

