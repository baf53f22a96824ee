package api

import (
	"clientreg/internal/flow"
	"clientreg/internal/presenter"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

func newServer(port int, d *flow.Dispatcher, notices *presenter.Notices) *http.Server {
	h := NewHandler(d, notices)
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// RunServerInterruptible runs the server in the background in a Go routine and immediately returns a chan to
// the caller. The caller can then send a signal to the chan to gracefully shutdown the server.
// It's up to the caller to wait for in the main Go routine to keep the server running.
func RunServerInterruptible(port int, d *flow.Dispatcher, notices *presenter.Notices) (stop chan<- struct{}, done <-chan error) {
	srv := newServer(port, d, notices)

	// one-shot channels for control & completion
	stopCh := make(chan struct{})
	doneCh := make(chan error, 1)

	go func() {
		log.Printf("clientreg listening on %s\n", srv.Addr)
		err := srv.ListenAndServe()
		// http.ErrServerClosed is returned on Shutdown; treat that as clean exit
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			doneCh <- err
			return
		}
		doneCh <- nil
	}()

	go func() {
		<-stopCh
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()
	return stopCh, doneCh
}
