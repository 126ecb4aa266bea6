package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/epithet-ssh/tnetstring/pkg/config"
	"github.com/epithet-ssh/tnetstring/pkg/tnetstring"
	"github.com/lmittmann/tint"
)

// configPaths are read, in order, when they exist. --config adds one more.
var configPaths = []string{
	"/etc/tns/config.yaml",
	"~/.config/tns/config.yaml",
}

type CLI struct {
	Verbose   int             `help:"Increase log verbosity (-v info, -vv debug)" short:"v" type:"counter"`
	Config    kong.ConfigFlag `help:"Config file (YAML, JSON or CUE)" short:"c"`
	MaxLength int             `help:"Largest payload length read or written" default:"${max_length}"`
	MaxDepth  int             `help:"Deepest container nesting read or written" default:"${max_depth}"`
	Encoding  string          `help:"Treat strings as text in this encoding (e.g. utf-8, latin1)" short:"e"`
	Lenient   bool            `help:"Skip whitespace between tnetstrings in streams"`

	Encode  EncodeCLI  `cmd:"" help:"Encode a YAML, JSON or CUE document as a tnetstring"`
	Decode  DecodeCLI  `cmd:"" help:"Decode a stream of tnetstrings into documents"`
	Inspect InspectCLI `cmd:"" help:"Print the frame structure of a stream of tnetstrings"`
	Serve   ServeCLI   `cmd:"" help:"Run the HTTP conversion service"`
}

func (c *CLI) settings() config.Settings {
	return config.Settings{
		MaxLength: c.MaxLength,
		MaxDepth:  c.MaxDepth,
		Encoding:  c.Encoding,
		Lenient:   c.Lenient,
	}
}

// stdio carries the process streams so commands can be run against
// buffers.
type stdio struct {
	in  io.Reader
	out io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	parser := newParser(&cli, stdout, stderr)

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	logger := newLogger(stderr, cli.Verbose)
	settings := cli.settings()
	codec, err := settings.Codec()
	if err != nil {
		logger.Error("invalid settings", "error", err)
		return 2
	}
	logger.Debug("codec configured", "settings", fmt.Sprintf("%+v", settings))

	err = kctx.Run(logger, codec, settings, &stdio{in: stdin, out: stdout})
	if err != nil {
		logger.Error("command failed", "command", kctx.Command(), "error", err)
		return 1
	}
	return 0
}

func newParser(cli *CLI, stdout, stderr io.Writer) *kong.Kong {
	return kong.Must(cli,
		kong.Name("tns"),
		kong.Description("Convert between tnetstrings and YAML, JSON or CUE documents."),
		kong.Writers(stdout, stderr),
		kong.Configuration(config.Loader, configPaths...),
		kong.Vars{
			"max_length": strconv.Itoa(tnetstring.DefaultMaxLength),
			"max_depth":  strconv.Itoa(tnetstring.DefaultMaxDepth),
			"listen":     config.DefaultListen,
		},
	)
}

func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity == 1:
		level = slog.LevelInfo
	case verbosity >= 2:
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    w != io.Writer(os.Stderr),
	}))
}

// openInput opens name for reading. An empty name or "-" is stdin.
func openInput(std *stdio, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(std.in), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open input: %w", err)
	}
	return f, nil
}
