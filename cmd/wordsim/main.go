// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordsim server and CLI application.

wordsim ranks words by how similarly their usage moved over time. Each word in
the corpus carries occurrence counts per year; two words are compared by the
cosine similarity of those counts laid out over every year in the corpus.

# Usage

Start the IPC server on a word file from the data directory:

	wordsim -file ngrams.txt

Run interactively, asking for the word file first:

	wordsim -c

Convert a text word file into a msgpack snapshot for faster startup:

	wordsim -file ngrams.txt -snapshot data/ngrams.bin

# Word files

A line without a comma starts a word, the "year,count" lines after it belong to
that word:

	cat
	2000,1
	2001,3
	dog
	2000,2
	2001,6

Files with a .bin or .msgpack extension are read as snapshots. Bare file names
are looked up in the data directory.

# Configuration

Runtime configuration is read from config.toml, created with defaults if it
doesn't exist:

	[engine]
	top_k = 4
	cache_size = 4

	[data]
	dir = "data/"
	file = ""

	[server]
	max_limit = 64
	max_word_len = 128

	[cli]
	show_scores = true
	prefix_limit = 8

# IPC Protocol

The server reads msgpack requests from stdin and writes msgpack responses to
stdout, see package server for the message types. Logs go to stderr.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordsim/internal/cli"
	"github.com/bastiangx/wordsim/internal/utils"
	"github.com/bastiangx/wordsim/pkg/config"
	"github.com/bastiangx/wordsim/pkg/corpus"
	"github.com/bastiangx/wordsim/pkg/server"
	"github.com/bastiangx/wordsim/pkg/similarity"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "wordsim"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, loader and engine, then hands over to the CLI or the server.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	dataDir := flag.String("data", "", "Directory containing word files (default from config)")
	wordFile := flag.String("file", "", "Word file to load, bare names are looked up in the data dir")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run interactive CLI instead of the IPC server")
	topK := flag.Int("k", 0, "Number of similar words to return (default from config)")
	snapshotPath := flag.String("snapshot", "", "Write the loaded word file as a msgpack snapshot and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activeConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *topK > 0 {
		appConfig.Engine.TopK = *topK
	}
	if *dataDir != "" {
		appConfig.Data.Dir = *dataDir
	}
	if *wordFile != "" {
		appConfig.Data.File = *wordFile
	}
	log.Debugf("Using config file: (%s)", activeConfigPath)

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	resolvedDataDir, err := pathResolver.GetDataDir(appConfig.Data.Dir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	loader := corpus.NewLoader(resolvedDataDir)
	if appConfig.Data.File != "" {
		if _, err := loader.Load(appConfig.Data.File); err != nil {
			log.Fatalf("Failed to load word file: %v", err)
		}
	} else if !*cliMode {
		log.Warn("No word file specified, serving an empty corpus until reload...")
	}

	if *snapshotPath != "" {
		if loader.Current().Len() == 0 {
			log.Fatal("Nothing to snapshot, pass a word file with -file")
		}
		if err := corpus.SaveSnapshot(*snapshotPath, loader.Current()); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		log.Infof("Snapshot written to %s", *snapshotPath)
		return
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		engine := similarity.NewEngine(similarity.Options{
			TopK:      appConfig.Engine.TopK,
			CacheSize: appConfig.Engine.CacheSize,
		})
		inputHandler := cli.NewInputHandler(loader, engine, cli.Options{
			ShowScores:  appConfig.CLI.ShowScores,
			PrefixLimit: appConfig.CLI.PrefixLimit,
		})
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(loader, appConfig, activeConfigPath)
	showStartupInfo(loader)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ wordsim ] Finds words that trend together")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}

// showStartupInfo reports the loaded corpus on stderr regardless of the log level.
func showStartupInfo(loader *corpus.Loader) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	stats := loader.Stats()
	log.Infof("%s %s, pid [ %d ]", AppName, Version, os.Getpid())
	log.Info("corpus", "file", stats.File, "words", stats.Words, "years", stats.Years)
	log.Info("status: ready")
}
