package httpfilter

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func serve(t *testing.T, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	Handler(h, nil).ServeHTTP(rec, req)
	return rec
}

func TestMinifiesHTML(t *testing.T) {
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		// Chunked writes: rewriting decisions straddle chunk boundaries.
		w.Write([]byte("<html>\n  <body>\n    <p> Hello <b> world"))
		w.Write([]byte(" </b> </p>\n    <!-- note -->\n  </body>\n</html>\n"))
	})
	want := "<html><body><p>Hello <b> world </b></p></body></html>"
	if got := rec.Body.String(); got != want {
		t.Errorf("expected body %q, got %q", want, got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if cl := rec.Header().Get("Content-Length"); cl != strconv.Itoa(len(want)) {
		t.Errorf("expected Content-Length %d, got %q", len(want), cl)
	}
}

func TestStatusPreserved(t *testing.T) {
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<p>  not found  </p>"))
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if want := "<p>not found</p>"; rec.Body.String() != want {
		t.Errorf("expected body %q, got %q", want, rec.Body.String())
	}
}

func TestNonHTMLPassthrough(t *testing.T) {
	body := "{\n  \"a\":  1\n}"
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
	if rec.Body.String() != body {
		t.Errorf("non-HTML body changed: %q", rec.Body.String())
	}
}

func TestNonHTMLStatusPreserved(t *testing.T) {
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("plain  text"))
	})
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", rec.Code)
	}
	if rec.Body.String() != "plain  text" {
		t.Errorf("plain body changed: %q", rec.Body.String())
	}
}

// A response with no Content-Type is classified by sniffing the first
// chunk: binary bodies must pass through byte-for-byte.
func TestSniffedBinaryPassthrough(t *testing.T) {
	body := "\x89PNG\r\n\x1a\n0000IHDR binary  data\n\n"
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
	if rec.Body.String() != body {
		t.Errorf("sniffed binary body changed: %q", rec.Body.String())
	}
}

func TestSniffedHTMLMinified(t *testing.T) {
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>\n  <body>\n    <p> hi </p>\n  </body>\n</html>\n"))
	})
	want := "<html><body><p>hi</p></body></html>"
	if rec.Body.String() != want {
		t.Errorf("expected body %q, got %q", want, rec.Body.String())
	}
}

// Passthrough responses keep the underlying writer's flushing, so
// non-HTML handlers can still stream.
func TestPassthroughFlush(t *testing.T) {
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: 1\n\n"))
		fl, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("ResponseWriter lost http.Flusher")
		}
		fl.Flush()
	})
	if !rec.Flushed {
		t.Errorf("flush not forwarded to underlying writer")
	}
	if rec.Body.String() != "data: 1\n\n" {
		t.Errorf("streamed body changed: %q", rec.Body.String())
	}
}

func TestNoBody(t *testing.T) {
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}
