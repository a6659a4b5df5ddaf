package internal

import (
	"fmt"
	"time"
)

type Config struct {
	DeviceName           string        `env:"DEVICE_NAME,required=true"`
	DeviceType           string        `env:"DEVICE_TYPE,default=pc"`
	IdentityFilepath     string        `env:"IDENTITY_FILEPATH,required=true"`
	IdentityPassphrase   string        `env:"IDENTITY_PASSPHRASE,required=true"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH,required=true"`
	FilesRootDir         string        `env:"FILES_ROOT_DIR,required=true"`
	DownloadTmpDir       string        `env:"DOWNLOAD_TMP_DIR,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	Host                 string        `env:"HOST,default=0.0.0.0"`
	Port                 int           `env:"PORT,required=true"`
	TLSCertFile          string        `env:"TLS_CERT_FILE,required=true"`
	TLSKeyFile           string        `env:"TLS_KEY_FILE,required=true"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
	ReplayWindow         time.Duration `env:"REPLAY_WINDOW,default=5m"`
	PresenceTTL          time.Duration `env:"PRESENCE_TTL,default=2m"`
	FileTokenDuration    time.Duration `env:"FILE_TOKEN_DURATION,default=1m"`
	DownloadInterval     time.Duration `env:"DOWNLOAD_INTERVAL,default=2s"`
	DownloadMaxRetries   int           `env:"DOWNLOAD_MAX_RETRIES,default=5"`
	DownloadWorkers      int           `env:"DOWNLOAD_WORKERS,default=2"`
	DownloadBatchSize    int           `env:"DOWNLOAD_BATCH_SIZE,default=16"`
	SweepInterval        time.Duration `env:"SWEEP_INTERVAL,default=10m"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s"`
	EventBufferSize      int           `env:"EVENT_BUFFER_SIZE,default=256"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=16"`
	MaxRSSBytes          uint64        `env:"MAX_RSS_BYTES,default=536870912"`
	MaxCPUPercent        float64       `env:"MAX_CPU_PERCENT,default=80"`
	MaxBodyBytes         int           `env:"MAX_BODY_BYTES,default=4194304"`
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be in 1..65535, got %d", c.Port)
	}
	if c.TLSCertFile == "" || c.TLSKeyFile == "" {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE are required")
	}
	if c.DownloadWorkers <= 0 {
		return fmt.Errorf("DOWNLOAD_WORKERS must be positive")
	}
	if c.ReplayWindow <= 0 {
		return fmt.Errorf("REPLAY_WINDOW must be positive")
	}
	return nil
}

func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
