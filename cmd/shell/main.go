package main

import (
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hexengine/config"
	"github.com/domino14/hexengine/shell"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

//go:embed hexengine.txt
var banner string

func main() {
	ex, err := os.Executable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	exPath := filepath.Dir(ex)

	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// Relative data paths are relative to the binary.
	cfg.AdjustRelativePaths(exPath)
	log.Logger = newLogger(cfg.GetBool(config.ConfigDebug))
	log.Debug().Str("version", Version).Interface("config", cfg.SanitizedSettings()).Msg("starting")

	os.Exit(run(cfg, exPath))
}

func newLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}

// run executes the command given on the command line, or starts the
// interactive shell when there is none. It returns the exit status.
func run(cfg *config.Config, exPath string) int {
	if p := cfg.GetString(config.ConfigCPUProfile); p != "" {
		stop, err := startCPUProfile(p)
		if err != nil {
			log.Err(err).Msg("cpu-profile")
			return 1
		}
		defer stop()
	}
	if p := cfg.GetString(config.ConfigMemProfile); p != "" {
		defer writeMemProfile(p)
	}
	if err := os.MkdirAll(cfg.GetString(config.ConfigDataPath), 0o755); err != nil {
		log.Err(err).Msg("data-path")
		return 1
	}

	sc := shell.NewShellController(cfg, exPath)
	defer sc.Cleanup()

	if args := cfg.Args(); len(args) > 0 {
		if err := sc.Execute(shellquote.Join(args...)); err != nil {
			return 1
		}
		return 0
	}

	fmt.Println(banner)
	fmt.Println(Version)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go sc.Loop(sig)
	<-sig
	log.Debug().Msg("shutting-down")
	return 0
}

func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func writeMemProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Err(err).Msg("mem-profile")
		return
	}
	defer f.Close()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Err(err).Msg("mem-profile")
		return
	}
	log.Info().Str("path", path).Msg("wrote-mem-profile")
}
