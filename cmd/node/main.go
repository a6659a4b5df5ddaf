package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"plainchat/auth"
	"plainchat/contract"
	"plainchat/delivery"
	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/filestore"
	"plainchat/internal"
	"plainchat/keycache"
	"plainchat/membership"
	"plainchat/observability"
	"plainchat/presence"
	"plainchat/projection"
	"plainchat/repositories"
	"plainchat/runtime"
	"plainchat/runtime/workers"
	"plainchat/services"
	"plainchat/sink"
	"plainchat/transport"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run keeps every defer on the exit path; main only maps the result to an exit code.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Identity & storage
	identity, err := auth.LoadOrCreateIdentity(config.IdentityFilepath, config.DeviceName, config.IdentityPassphrase)
	if err != nil {
		return fmt.Errorf("identity loading failed: %w", err)
	}
	selfID := identity.DeviceID
	generated, err := auth.EnsureCertificate(config.TLSCertFile, config.TLSKeyFile, selfID)
	if err != nil {
		return fmt.Errorf("certificate setup failed: %w", err)
	}
	if generated {
		log.Info("Self-signed certificate generated", "cert", config.TLSCertFile)
	}

	db, err := repositories.Open(config.BadgerFilepath)
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	writer, err := repositories.OpenSearchWriter(config.BlugeFilepath)
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() { _ = writer.Close() }()

	peers := repositories.NewPeerRepository(db, log)
	channels := repositories.NewChannelRepository(db, log)
	chats := repositories.NewChatRepository(db, log, selfID)
	downloads := repositories.NewDownloadRepository(db, log)
	store, err := filestore.NewStore(config.FilesRootDir, repositories.NewFileRepository(db, log), log)
	if err != nil {
		return err
	}
	keys := keycache.New(peers, channels, log)
	if err := keys.Refresh(ctx); err != nil {
		return fmt.Errorf("key cache loading failed: %w", err)
	}

	// 3. Supervision & event propagation
	telemetry := make(chan event.Event, config.EventBufferSize)
	supervisor := workers.NewSupervisor(log, telemetry)
	orchestrator := runtime.NewOrchestrator(log, supervisor, runtime.NewRegistry(), telemetry,
		config.EventBufferSize, config.SinkTimeout)

	// 4. Peer transport
	presenceTracker := presence.NewTracker(log, config.PresenceTTL, telemetry)
	client := transport.NewClient(selfID, identity, keys, config.RequestTimeout, log).
		WithTokenTTL(config.FileTokenDuration)
	client.OnUnreachable(presenceTracker.MarkUnreachable)
	server := transport.NewServer(transport.NewVerifier(keys, config.ReplayWindow), keys, store, config.MaxBodyBytes, log)

	// 5. Services
	deps := services.Dependencies{
		SelfID:    selfID,
		Chats:     chats,
		Peers:     peers,
		Channels:  channels,
		Downloads: downloads,
		Index:     repositories.NewSearchIndex(writer, log, selfID),
		Files:     store,
		Keys:      keys,
		Client:    client,
		Tracker:   delivery.NewTracker(chats, telemetry, log),
		Presence:  presenceTracker,
		Events:    orchestrator,
	}
	chatService := services.NewChatService(deps, log)
	protocol := membership.NewProtocol(membership.Self{
		ID:         selfID,
		Name:       identity.Name,
		PublicKey:  identity.EncodedPublicKey(),
		DeviceType: domain.DeviceType(config.DeviceType),
	}, channels, peers, keys, client, chatService, orchestrator, log)
	chatService.OnPeerOnline(func(ctx context.Context, peerID string) {
		if n := protocol.RetryPendingInvites(ctx, peerID); n > 0 {
			log.Info("Pending invites resent", "peer_id", peerID, "count", n)
		}
	})
	chatService.RegisterHandlers(server)
	server.Handle(transport.OpChannelSystemMessage, protocol.Serve)

	stats := observability.NewMonitoringManager(log)
	accumulator, err := services.NewFileAccumulator(config.DownloadTmpDir)
	if err != nil {
		return err
	}
	downloadService := services.NewDownloadService(deps, accumulator, stats, config.DownloadMaxRetries, log)
	if err := downloadService.Recover(); err != nil {
		return fmt.Errorf("download recovery failed: %w", err)
	}

	// 6. Sinks & workers
	orchestrator.Add(
		projection.NewTimelines(),
		sink.NewNotificationSink(sink.LogNotifier(log), keys, log),
	)
	orchestrator.AddWorkers(nodeWorkers(log, config, orchestrator, server, downloads, store, downloadService, stats)...)

	log.Info("Node started", "device_id", selfID, "name", identity.Name, "addr", config.ListenAddr())
	orchestrator.Start(ctx)

	log.Info("Shutting down gracefully...")
	chatService.Wait()
	log.Info("Program stopped cleanly")
	return nil
}

func nodeWorkers(
	log *slog.Logger,
	config internal.Config,
	orchestrator *runtime.Orchestrator,
	server *transport.Server,
	downloads repositories.IDownloadRepository,
	store *filestore.Store,
	downloader contract.IDownloader,
	stats *observability.MonitoringManager,
) []contract.Worker {
	telemetry := orchestrator.Telemetry()
	counter := event.NewCounter()
	tasks := make(chan domain.DownloadTask, config.DownloadWorkers)

	list := []contract.Worker{
		workers.NewPeerServerWorker(log, server, config.ListenAddr(), config.TLSCertFile, config.TLSKeyFile),
		workers.NewTelemetryWorker(log, telemetry,
			event.NewChannelCapacityHandler(log, config.LowCapacityThreshold),
			event.NewDeliveryHandler(log, counter),
			event.NewProcessHealthHandler(log, config.MaxRSSBytes, config.MaxCPUPercent),
			event.NewWorkerRestartedAfterPanicHandler(log, counter),
		),
		workers.NewHealthMonitoringWorker(log, telemetry, config.MetricInterval),
		workers.NewChannelCapacityWorker(log, orchestrator.Channels(), telemetry, config.MetricInterval),
		workers.NewDownloadPollerWorker(tasks, downloads, log, config.DownloadInterval, config.DownloadBatchSize),
		workers.NewSweeperWorker(log, store, stats, config.SweepInterval),
		workers.NewReporterWorker(log, stats, config.MetricInterval),
	}
	for range config.DownloadWorkers {
		list = append(list, workers.NewDownloaderWorker(log, tasks, downloader))
	}
	return list
}
