// mamdecomp recovers Windows 10+ compressed prefetch files.
//
// Two modes of operation:
//
// File mode (-f): decodes one container into the output directory. A file that is not
// a container is an error, except when its name ends in .pf: prefetch files written
// by older Windows releases are stored uncompressed and are passed over silently.
//
// Directory mode: walks a directory tree, decodes every *.pf file into the output
// directory and reports a summary. Files that are not containers are skipped; every
// other failure is reported and counted without stopping the run.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/arloliu/mam"
	"github.com/arloliu/mam/batch"
	"github.com/arloliu/mam/container"
	"github.com/arloliu/mam/format"
)

const (
	exitFailures = 1
	exitUsage    = 2
)

// exitError carries a process exit code. An empty message prints nothing.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func (e *exitError) ExitCode() int { return e.code }

func usageError(msg string, args ...any) error {
	return &exitError{code: exitUsage, msg: fmt.Sprintf(msg, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		code := exitFailures
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			code = coder.ExitCode()
		}
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		}
		stop()
		os.Exit(code)
	}
}

type flags struct {
	file        string
	config      string
	workers     int
	backend     string
	compression string
	pattern     string
	manifest    string
	metricsFile string
	logLevel    string
	logFormat   string
	inspect     bool
	version     bool
	help        bool
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.file, "file", "f", "", "decode a single file instead of a directory")
	fs.StringVar(&f.config, "config", "", "YAML configuration file")
	fs.IntVar(&f.workers, "workers", 0, "files decoded concurrently (default: number of CPUs)")
	fs.StringVar(&f.backend, "backend", string(batch.BackendNative), "decompression backend: native or ntdll")
	fs.StringVar(&f.compression, "compress", "none", "output compression: none, zstd, s2, lz4 or snappy")
	fs.StringVar(&f.pattern, "pattern", batch.DefaultPattern, "file name pattern in directory mode")
	fs.StringVar(&f.manifest, "manifest", "", "write a JSON manifest of every processed file")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level")
	fs.StringVar(&f.logFormat, "log-format", "text", "log format: text or json")
	fs.BoolVar(&f.inspect, "inspect", false, "print container headers without decoding")
	fs.BoolVar(&f.version, "version", false, "print the version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
}

// resolve builds the run configuration: the config file when given, then every flag
// set explicitly on the command line.
func (f *flags) resolve(fs *pflag.FlagSet) (*batch.Config, error) {
	cfg := batch.Default()
	if f.config != "" {
		loaded, err := batch.LoadFile(f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("backend") {
		cfg.Backend = batch.Backend(strings.ToLower(f.backend))
	}
	if fs.Changed("compress") {
		ct, err := format.ParseCompressionType(f.compression)
		if err != nil {
			return nil, err
		}
		cfg.Compression = ct
	}
	if fs.Changed("pattern") {
		cfg.Pattern = f.pattern
	}
	if fs.Changed("manifest") {
		cfg.Manifest = f.manifest
	}
	if fs.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f flags

	fs := pflag.NewFlagSet("mamdecomp", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	f.register(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, fs)
			return nil
		}

		return usageError("%v", err)
	}

	if f.help {
		printHelp(stderr, fs)
		return nil
	}
	if f.version {
		fmt.Fprintf(stdout, "mamdecomp %s\n", mam.Version)
		return nil
	}

	cfg, err := f.resolve(fs)
	if err != nil {
		return usageError("%v", err)
	}

	log, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return usageError("%v", err)
	}

	positional := fs.Args()

	if f.inspect {
		return runInspect(f.file, positional, cfg.Pattern, stdout)
	}

	var (
		jobs   []batch.Job
		outDir string
	)

	if f.file != "" {
		if len(positional) != 1 {
			return usageError("usage: mamdecomp -f <file> <outdir>")
		}
		jobs = []batch.Job{{Path: f.file, Explicit: true}}
		outDir = positional[0]
	} else {
		if len(positional) != 2 {
			return usageError("usage: mamdecomp <dir> <outdir>")
		}
		jobs, err = batch.Walk(positional[0], cfg.Pattern)
		if err != nil {
			return usageError("walk %s: %v", positional[0], err)
		}
		outDir = positional[1]
	}

	var manifest *batch.Manifest
	if cfg.Manifest != "" {
		manifest = batch.NewManifest()
	}

	metrics := batch.NewMetrics("mamdecomp")

	runner, err := batch.NewRunner(log, cfg, outDir, manifest, metrics)
	if err != nil {
		return usageError("%v", err)
	}

	log.WithFields(logrus.Fields{
		"files":   len(jobs),
		"workers": cfg.Workers,
		"backend": cfg.Backend,
		"output":  outDir,
	}).Debug("Starting")

	sum, runErr := runner.Run(ctx, jobs)

	if manifest != nil {
		if err := manifest.WriteFile(cfg.Manifest); err != nil {
			log.WithError(err).Error("Failed to write manifest")
		}
	}
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.WithError(err).Error("Failed to write metrics")
		}
	}

	if runErr != nil {
		return runErr
	}

	if f.file != "" {
		if sum.Decoded == 1 {
			fmt.Fprintf(stdout, "%s: recovered, ready to be parsed\n", f.file)
		}
	} else {
		fmt.Fprintf(stdout, "decoded %d, skipped %d, failed %d, size mismatches %d\n",
			sum.Decoded, sum.Skipped, sum.Failed, sum.SizeMismatch)
	}

	if sum.Failed > 0 {
		return &exitError{code: exitFailures}
	}

	return nil
}

func runInspect(file string, positional []string, pattern string, stdout io.Writer) error {
	var paths []string

	switch {
	case file != "" && len(positional) == 0:
		paths = []string{file}
	case file == "" && len(positional) == 1:
		jobs, err := batch.Walk(positional[0], pattern)
		if err != nil {
			return usageError("walk %s: %v", positional[0], err)
		}
		for _, job := range jobs {
			paths = append(paths, job.Path)
		}
	default:
		return usageError("usage: mamdecomp --inspect (-f <file> | <dir>)")
	}

	failed := false
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", path, err)
			failed = true

			continue
		}

		info, err := container.Inspect(data)
		if err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", path, err)
			failed = true

			continue
		}

		crc := "none"
		if info.HasChecksum {
			crc = fmt.Sprintf("%08x", info.Embedded)
		}
		fmt.Fprintf(stdout, "%s: algorithm=%s supported=%t crc=%s declared=%d payload=%d\n",
			path, info.Algorithm, info.Supported, crc, info.DeclaredSize, info.PayloadSize)
	}

	if failed {
		return &exitError{code: exitFailures}
	}

	return nil
}

func newLogger(cfg batch.LogConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log, nil
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `mamdecomp recovers compressed Windows prefetch files.

Usage:
  mamdecomp [flags] -f <file> <outdir>
  mamdecomp [flags] <dir> <outdir>
  mamdecomp --inspect (-f <file> | <dir>)

Flags:
%s`, fs.FlagUsages())
}
