// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program millijson checks and parses JSON files.
//
// Usage:
//
//	millijson [flags] validate FILE...
//	millijson [flags] parse FILE...
//
// The validate command checks that each file holds a single valid JSON value
// and prints its type. The parse command prints each value in compact form,
// with object keys in sorted order. A FILE named "-" is read from stdin.
//
// The exit status is 0 if every file is valid, 1 if any file is not, and 2
// if the command line is not valid.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/millijson"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// tool carries the settings shared by the commands.
type tool struct {
	stdin  io.Reader
	out    io.Writer
	logger log.Logger
	opts   *millijson.Options

	pass, fail *color.Color
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := kingpin.New("millijson", "Check and parse JSON files.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.Terminate(nil)

	numberAsString := app.Flag("number-as-string", "Report numbers exactly as written.").Bool()
	bufferSize := app.Flag("buffer-size", "Size of the file read buffer.").Default("64KiB").Bytes()
	verbose := app.Flag("verbose", "Enable debug logging.").Short('v').Bool()
	noColor := app.Flag("no-color", "Disable colored output.").Bool()

	validateCmd := app.Command("validate", "Check that each file is valid JSON and print its type.")
	validateFiles := validateCmd.Arg("file", "The files to check.").Required().Strings()

	parseCmd := app.Command("parse", "Parse each file and print it as compact JSON.")
	parseFiles := parseCmd.Arg("file", "The files to parse.").Required().Strings()

	command, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "millijson: %v\n", err)
		return 2
	} else if command == "" {
		return 2 // help was requested
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	if *verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	t := &tool{
		stdin:  stdin,
		out:    stdout,
		logger: log.With(logger, "cmd", command),
		opts: &millijson.Options{
			NumberAsString: *numberAsString,
			BufferSize:     int(*bufferSize),
		},
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
	}
	if *noColor {
		t.pass.DisableColor()
		t.fail.DisableColor()
	}
	level.Debug(t.logger).Log("msg", "starting", "bufferSize", humanize.IBytes(uint64(t.opts.BufferSize)))

	var files []string
	var each func(string) error
	switch command {
	case validateCmd.FullCommand():
		files, each = *validateFiles, t.validate
	case parseCmd.FullCommand():
		files, each = *parseFiles, t.parse
	}

	var nfail int
	for _, path := range files {
		if path == "" {
			path = "-" // kingpin reports a bare "-" argument as empty
		}
		if err := each(path); err != nil {
			nfail++
			kv := []any{"msg", "invalid input", "file", path, "kind", millijson.KindOf(err)}
			if lc, ok := t.locate(path, err); ok {
				kv = append(kv, "at", lc)
			}
			level.Error(t.logger).Log(append(kv, "err", err)...)
		}
	}
	if nfail != 0 {
		level.Info(t.logger).Log("msg", "some files failed", "failed", nfail, "total", len(files))
		return 1
	}
	return 0
}

// validate checks the named file and reports its type.
func (t *tool) validate(path string) error {
	start := time.Now()
	var typ millijson.Type
	var err error
	if path == "-" {
		typ, err = millijson.ValidateReader(t.stdin, t.opts)
	} else {
		typ, err = millijson.ValidateFile(path, t.opts)
	}
	t.logDone(path, start)

	if err != nil {
		fmt.Fprintf(t.out, "%s: %s (%v)\n", path, t.fail.Sprint("FAIL"), err)
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(t.out, "%s: %s (%v)\n", path, t.pass.Sprint("ok"), typ)
	return nil
}

// parse parses the named file and prints its value.
func (t *tool) parse(path string) error {
	start := time.Now()
	var v millijson.Value
	var err error
	if path == "-" {
		v, err = millijson.ParseReader(t.stdin, t.opts)
	} else {
		v, err = millijson.ParseFile(path, t.opts)
	}
	t.logDone(path, start)

	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintln(t.out, v.JSON())
	return nil
}

func (t *tool) logDone(path string, start time.Time) {
	kv := []any{"msg", "processed", "file", path, "elapsed", time.Since(start)}
	if path != "-" {
		if fi, err := os.Stat(path); err == nil {
			kv = append(kv, "size", humanize.Bytes(uint64(fi.Size())))
		}
	}
	level.Debug(t.logger).Log(kv...)
}

// locate reports the line and column of the syntax error err in the named
// file, if it can be found.
func (t *tool) locate(path string, err error) (millijson.LineCol, bool) {
	var perr *millijson.Error
	if path == "-" || !errors.As(err, &perr) || perr.Kind == millijson.IOError || perr.Offset < 0 {
		return millijson.LineCol{}, false
	}
	f, oerr := os.Open(path)
	if oerr != nil {
		return millijson.LineCol{}, false
	}
	defer f.Close()
	lc, lerr := millijson.Locate(f, perr.Offset)
	if lerr != nil {
		level.Debug(t.logger).Log("msg", "cannot locate error", "file", path, "err", lerr)
		return millijson.LineCol{}, false
	}
	return lc, true
}
