package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusNotFound)

	if rw.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusNotFound)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if !rw.Written() {
		t.Error("Written() = false, want true")
	}
}

func TestResponseWriter_DoubleWriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)

	if rw.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d (first write wins)", rw.Status(), http.StatusNotFound)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	if _, err := rw.Write([]byte("hello")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if rw.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusOK)
	}
	if !rw.Written() {
		t.Error("Written() = false, want true")
	}
}

func TestResponseWriter_Size(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	_, _ = rw.Write([]byte("hello"))
	_, _ = rw.Write([]byte(" world"))

	if rw.Size() != 11 {
		t.Errorf("Size() = %d, want 11", rw.Size())
	}
	if w.Body.String() != "hello world" {
		t.Errorf("body = %q, want %q", w.Body.String(), "hello world")
	}
}

func TestResponseWriter_NotWrittenInitially(t *testing.T) {
	rw := NewResponseWriter(httptest.NewRecorder())

	if rw.Written() {
		t.Error("Written() = true before any write")
	}
	if rw.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want default %d", rw.Status(), http.StatusOK)
	}
}

func TestResponseWriter_Unwrap(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	if rw.Unwrap() != w {
		t.Error("Unwrap() did not return the underlying writer")
	}
}

func TestResponseWriter_Flush(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	_, _ = rw.Write([]byte("data"))
	rw.Flush()

	if !w.Flushed {
		t.Error("Flush() did not reach the underlying writer")
	}
}
