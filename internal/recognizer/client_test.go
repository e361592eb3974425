package recognizer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProcess_SendsMultipartImage(t *testing.T) {
	var gotField string
	var gotData []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("server failed to parse multipart form: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		for field := range r.MultipartForm.File {
			gotField = field
		}
		f, _, err := r.FormFile("image")
		if err == nil {
			defer f.Close()
			buf := make([]byte, 16)
			n, _ := f.Read(buf)
			gotData = buf[:n]
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"store_name":"Mart"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	raw, err := client.Process(context.Background(), []byte("fake-image"), "receipt.jpg")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if gotField != "image" {
		t.Errorf("multipart field = %q, want image", gotField)
	}
	if string(gotData) != "fake-image" {
		t.Errorf("uploaded data = %q, want fake-image", gotData)
	}
	if string(raw) != `{"store_name":"Mart"}` {
		t.Errorf("response body = %s", raw)
	}
}

func TestProcess_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Process(context.Background(), []byte("img"), "r.png")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestProcess_Unreachable(t *testing.T) {
	// Port 0 is never routable, so the dial fails immediately.
	client := NewClient("http://127.0.0.1:0/process-receipt", time.Second)
	_, err := client.Process(context.Background(), []byte("img"), "r.png")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestProcess_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, time.Second)
	_, err := client.Process(ctx, []byte("img"), "r.png")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
