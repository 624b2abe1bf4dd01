package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter wraps http.ResponseWriter, recording the status code,
// body size, and whether the header went out, for middleware that needs
// to inspect the response after the handler ran.
type ResponseWriter struct {
	http.ResponseWriter
	code       int
	size       int64
	headerSent bool
	mu         sync.Mutex
}

// NewResponseWriter wraps w. The recorded status starts at 200 and
// changes only through WriteHeader.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		code:           http.StatusOK,
	}
}

// WriteHeader sends the header once; repeated calls are dropped.
func (w *ResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	if w.headerSent {
		w.mu.Unlock()
		return
	}
	w.headerSent = true
	w.code = code
	w.mu.Unlock()

	w.ResponseWriter.WriteHeader(code)
}

// Write sends b, emitting the implicit 200 header first when the
// handler never called WriteHeader.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	send := !w.headerSent
	code := w.code
	w.headerSent = true
	w.mu.Unlock()

	if send {
		w.ResponseWriter.WriteHeader(code)
	}

	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status returns the recorded response status code.
func (w *ResponseWriter) Status() int {
	return w.code
}

// Size returns how many body bytes have been written.
func (w *ResponseWriter) Size() int64 {
	return w.size
}

// Written reports whether the header has gone out.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.headerSent
}

// Flush forwards to the underlying writer when it supports flushing.
func (w *ResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack forwards to the underlying writer when it supports hijacking.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Push forwards to the underlying writer when it supports server push.
func (w *ResponseWriter) Push(target string, opts *http.PushOptions) error {
	if pusher, ok := w.ResponseWriter.(http.Pusher); ok {
		return pusher.Push(target, opts)
	}
	return http.ErrNotSupported
}

// Unwrap exposes the wrapped writer for middleware that needs the
// original.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
