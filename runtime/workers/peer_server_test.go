package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeListener struct {
	stop     chan struct{}
	certFile atomic.Value
	shutdown atomic.Int32
	failWith error
}

func newFakeListener() *fakeListener { return &fakeListener{stop: make(chan struct{})} }

func (f *fakeListener) ListenTLS(_, certFile, _ string) error {
	f.certFile.Store(certFile)
	if f.failWith != nil {
		return f.failWith
	}
	<-f.stop
	return nil
}

func (f *fakeListener) Shutdown() error {
	if f.shutdown.Add(1) == 1 {
		close(f.stop)
	}
	return nil
}

func TestPeerServerWorker_ShutdownOnCancel(t *testing.T) {
	req := require.New(t)
	server := newFakeListener()
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan error, 1)
	go func() {
		stopped <- NewPeerServerWorker(slog.Default(), server, ":0", "cert.pem", "key.pem").Run(ctx)
	}()
	cancel()

	select {
	case err := <-stopped:
		req.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		req.Fail("peer server did not stop")
	}
	req.Equal(int32(1), server.shutdown.Load())
	req.Equal("cert.pem", server.certFile.Load())
}

func TestPeerServerWorker_ListenError(t *testing.T) {
	server := newFakeListener()
	server.failWith = fmt.Errorf("address already in use")

	err := NewPeerServerWorker(slog.Default(), server, ":0", "cert.pem", "key.pem").Run(context.Background())
	require.EqualError(t, err, "address already in use")
}
