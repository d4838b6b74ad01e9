package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	"golang.org/x/net/netutil"
)

// Run listens on cfg.Listen and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve 在 ln 上提供服务；ctx 结束后停止接收新连接，并在 ShutdownTimeout 内等待进行中的请求完成。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}
	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout.Duration,
		WriteTimeout: s.cfg.WriteTimeout.Duration,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("[INFO] %q listening on %s ...", s.cfg.AppName, ln.Addr())
		serverErrChan <- server.Serve(ln)
	}()

	select {
	case err := <-serverErrChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("[INFO] shutting down %q ...", s.cfg.AppName)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Duration)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] server shutdown failed: %v", err)
	}
	if err := <-serverErrChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Printf("[INFO] %q shutdown complete", s.cfg.AppName)
	return nil
}
