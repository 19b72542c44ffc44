// Package localmodel manages the lifecycle of a locally hosted model
// server (llama-server or compatible): spawn, health poll, shutdown.
package localmodel

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/context-labs/uwu/internal/config"
)

// Server is a running (or soon to be running) local model server.
type Server struct {
	cmd       *exec.Cmd
	healthURL string
	client    *http.Client
	debug     bool
}

// New prepares a server from the local provider configuration. The process
// is not started until Start is called.
func New(cfg config.LocalConfig, debug bool) *Server {
	command := cfg.Command
	if command == "" {
		command = "llama-server"
	}
	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	args := append([]string{"--port", fmt.Sprintf("%d", port)}, cfg.Args...)
	cmd := exec.Command(command, args...)

	return &Server{
		cmd:       cmd,
		healthURL: fmt.Sprintf("http://localhost:%d/health", port),
		client:    &http.Client{Timeout: 2 * time.Second},
		debug:     debug,
	}
}

// Running reports whether something already answers the health endpoint,
// in which case spawning a second server would just fail on the port.
func (s *Server) Running() bool {
	resp, err := s.client.Get(s.healthURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == 200
}

// Start spawns the server process and polls its health endpoint with
// exponential backoff until it responds or ctx expires.
func (s *Server) Start(ctx context.Context) error {
	if s.debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] LocalModel: spawning %s\n", s.cmd.Path)
	}

	if err := s.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start local model server: %w", err)
	}

	if err := s.waitHealthy(ctx); err != nil {
		s.Stop()
		return fmt.Errorf("local model server never became healthy: %w", err)
	}

	if s.debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] LocalModel: healthy at %s\n", s.healthURL)
	}
	return nil
}

func (s *Server) waitHealthy(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second
	policy.MaxElapsedTime = 60 * time.Second

	check := func() error {
		resp, err := s.client.Get(s.healthURL)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
		}
		return nil
	}

	return backoff.Retry(check, backoff.WithContext(policy, ctx))
}

// Stop terminates the server process. Safe to call when Start failed or
// was never called.
func (s *Server) Stop() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	if s.debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] LocalModel: stopping pid %d\n", s.cmd.Process.Pid)
	}
	_ = s.cmd.Process.Kill()
	_ = s.cmd.Wait()
}
