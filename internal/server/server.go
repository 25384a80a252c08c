package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/abcwallet/abc-core/internal/config"
	"github.com/abcwallet/abc-core/internal/logger"
)

type server struct {
	httpServer *httpServer
}

// NewServer wires the reference auth-server's chi router into a managed
// [Server] lifecycle (listen, graceful shutdown on SIGTERM/SIGINT/SIGQUIT).
func NewServer(handler http.Handler, cfg config.Server, log *logger.Logger) (Server, error) {
	log.Info().Msg("creating new server...")

	return &server{
		httpServer: newHTTPServer(handler, cfg),
	}, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		fmt.Printf("Error running server: %v \n", err)
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

func (s *server) run() error {
	if s.httpServer == nil {
		return errNoServersAreCreated
	}

	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	go func() {
		<-ctx.Done()
		s.httpServer.Shutdown()
		close(idleConnectionsClosed)
	}()

	fmt.Println("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	fmt.Println("server Shutdown gracefully")

	return nil
}
