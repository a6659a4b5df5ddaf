package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"plainchat/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" required:"true"`
	// INSPECT_COLOURS enables colorized statuses
	Colours bool `envconfig:"INSPECT_COLOURS" default:"true"`
}

func main() {
	what := flag.String("what", "peers", "What to print: peers, channels, chats, files or downloads")
	flag.Parse()

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}
	db, err := repositories.OpenReadOnly(config.BadgerFilepath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error while opening Badger: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := inspect(os.Stdout, db, *what, config.Colours); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func inspect(w io.Writer, db *badger.DB, what string, colours bool) error {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := printer{w: w, colours: colours}
	switch what {
	case "peers":
		peers, err := repositories.NewPeerRepository(db, log).List()
		if err != nil {
			return err
		}
		p.peers(peers)
	case "channels":
		channels, err := repositories.NewChannelRepository(db, log).List()
		if err != nil {
			return err
		}
		p.channels(channels)
	case "chats":
		chats, err := repositories.NewChatRepository(db, log, "").List()
		if err != nil {
			return err
		}
		p.chats(chats)
	case "files":
		files, err := repositories.NewFileRepository(db, log).List()
		if err != nil {
			return err
		}
		p.files(files)
	case "downloads":
		tasks, err := repositories.NewDownloadRepository(db, log).List()
		if err != nil {
			return err
		}
		p.downloads(tasks)
	default:
		return fmt.Errorf("unknown -what %q", what)
	}
	return nil
}
