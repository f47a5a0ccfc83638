package http

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestShutdownBeforeStart(t *testing.T) {
	s := NewServer(zerolog.Nop())
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Start("127.0.0.1:0") }()

	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("ожидали ErrServerClosed, получили %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Start не завершился после Shutdown")
	}
}
