// Package lifecycle provides cooperative shutdown for long-running commands.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Shutdown is a cancellation token shared by the main goroutine and any
// workers. It fires on SIGINT/SIGTERM or when Kill is called.
type Shutdown struct {
	ctx    context.Context
	cancel context.CancelFunc
	stop   func()

	mu     sync.Mutex
	reason string
}

// New returns a Shutdown derived from parent that also listens for
// termination signals.
func New(parent context.Context) *Shutdown {
	ctx, cancel := context.WithCancel(parent)
	s := &Shutdown{ctx: ctx, cancel: cancel}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	s.stop = func() {
		signal.Stop(sigs)
		close(done)
	}

	go func() {
		select {
		case sig := <-sigs:
			s.kill("signal: " + sig.String())
		case <-ctx.Done():
		case <-done:
		}
	}()

	return s
}

// Context is cancelled once shutdown starts
func (s *Shutdown) Context() context.Context {
	return s.ctx
}

// Kill starts shutdown from any goroutine. Only the first reason is kept.
func (s *Shutdown) Kill(reason string) {
	s.kill(reason)
}

func (s *Shutdown) kill(reason string) {
	s.mu.Lock()
	if s.reason == "" {
		s.reason = reason
	}
	s.mu.Unlock()
	s.cancel()
}

// Reason returns why shutdown started, or "" while running
func (s *Shutdown) Reason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// Done is closed once shutdown starts
func (s *Shutdown) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Wait blocks until shutdown starts. It keeps a process (and whatever it
// drives) alive for inspection without spinning.
func (s *Shutdown) Wait() {
	<-s.ctx.Done()
}

// Close stops listening for signals and cancels the context
func (s *Shutdown) Close() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
	s.cancel()
}
