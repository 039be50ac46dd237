package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/scanify/scanify/internal/parsing"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run parses one OCR transcript, read from the file argument or stdin, and
// writes the receipt as JSON or as a text report
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := ff.NewFlagSet("receipt-parse")
	var (
		format      = fs.StringLong("format", "json", "Output format: 'json' or 'report'")
		debug       = fs.BoolLong("debug", "Log defaulted fields to stderr")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("RECEIPT_PARSE")); err != nil {
		fmt.Fprintf(stderr, "%s\n", ffhelp.Flags(fs))
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return nil
	}

	if *format != "json" && *format != "report" {
		return fmt.Errorf("invalid format %q: want json or report", *format)
	}

	in := stdin
	switch rest := fs.GetArgs(); len(rest) {
	case 0:
	case 1:
		f, err := os.Open(rest[0])
		if err != nil {
			return fmt.Errorf("opening transcript: %w", err)
		}
		defer f.Close()
		in = f
	default:
		return errors.New("at most one transcript file may be given")
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading transcript: %w", err)
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	receipt := parsing.NewParser(logger).Parse(string(text))

	if *format == "report" {
		_, err := fmt.Fprintln(stdout, parsing.Render(receipt))
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(receipt)
}
