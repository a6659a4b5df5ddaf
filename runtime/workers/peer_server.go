package workers

import (
	"context"
	"log/slog"
)

type listener interface {
	ListenTLS(addr, certFile, keyFile string) error
	Shutdown() error
}

// PeerServerWorker serves the peer endpoints over TLS until ctx is canceled.
type PeerServerWorker struct {
	log      *slog.Logger
	server   listener
	addr     string
	certFile string
	keyFile  string
}

func NewPeerServerWorker(log *slog.Logger, server listener, addr, certFile, keyFile string) *PeerServerWorker {
	return &PeerServerWorker{log: log, server: server, addr: addr, certFile: certFile, keyFile: keyFile}
}

func (w *PeerServerWorker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		w.log.Info("Peer server listening", "addr", w.addr, "cert", w.certFile)
		errCh <- w.server.ListenTLS(w.addr, w.certFile, w.keyFile)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := w.server.Shutdown(); err != nil {
			w.log.Warn("Peer server shutdown failed", "error", err)
		}
		<-errCh
		return ctx.Err()
	}
}
