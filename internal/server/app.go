// Package server runs the contact pipeline as a plain HTTP service for
// local development, standing in for the API Gateway front end. It wires
// the same handler the Lambda uses and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fredjean/fredjean-net-contact/internal/handler"
	"github.com/fredjean/fredjean-net-contact/internal/logging"
)

type App struct {
	addr    string
	handler *handler.Handler
	logger  logging.Logger
}

func NewApp(addr string, h *handler.Handler, logger logging.Logger) *App {
	return &App{addr: addr, handler: h, logger: logger.With("module", "local_server")}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// ServeHTTP adapts one plain HTTP request into the event shape the
// pipeline handler expects and writes its response back.
func (app *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "unable to read request body", http.StatusBadRequest)
		return
	}

	req := &handler.Request{
		HTTPMethod: r.Method,
		Headers:    flattenHeaders(r.Header),
		Body:       string(body),
		RequestContext: handler.RequestContext{
			Identity: handler.Identity{SourceIP: clientIP(r)},
		},
	}

	resp := app.handler.Handle(r.Context(), req)

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	io.WriteString(w, resp.Body)
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{Addr: app.addr, Handler: app}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting server", "address", app.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
