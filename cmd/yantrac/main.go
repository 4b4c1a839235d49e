/*
Yantrac reads a grammar source and generates a lexer/parser in Go from it.

Usage:

	yantrac [flags]

The flags are:

	-f FILE
		Read the grammar from FILE. A FILE ending in .md is read as a
		literate grammar: only its ```yantra fenced blocks are used.

	-s STRING
		Read the grammar from the given argument instead of a file.

	-c utf8|ascii
		Character encoding to assume for the grammar source (default utf8).

	-d DIR
		Output directory (default ".").

	-n BASENAME
		Output base name; defaults to the grammar's %class name.

	-a
		Amalgamated single-file output, including a main entry point.

	-r
		Suppress source-position directives in emitted code.

	-m
		Verbose progress on stdout.

	-l LOG|-
		Diagnostic log file; "-" means stdout.

	-g FILE
		Emit a canonical grammar dump to FILE and exit.

	-v, --version
		Print version, exit.

Project defaults may be set in a .yantra.toml file in the current
directory; command-line flags override it.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/kschwaiger/yantra"
	"github.com/kschwaiger/yantra/internal/gerrors"
	"github.com/kschwaiger/yantra/internal/grammar"
)

func applyEncodingOverride(g *grammar.Grammar) {
	switch *flagEncoding {
	case "ascii":
		g.Encoding = grammar.EncodingASCII
	case "utf8", "":
		// leave whatever %encoding declared
	}
}

const version = "0.1.0"

const (
	exitSuccess = 0
	exitFailure = 1
)

var (
	flagGrammarFile = pflag.StringP("file", "f", "", "read grammar from file")
	flagGrammarStr  = pflag.StringP("string", "s", "", "read grammar from argument")
	flagEncoding    = pflag.StringP("encoding", "c", "", "character encoding: utf8 or ascii")
	flagOutDir      = pflag.StringP("outdir", "d", ".", "output directory")
	flagBaseName    = pflag.StringP("name", "n", "", "output base name")
	flagAmalgam     = pflag.BoolP("amalgamated", "a", false, "amalgamated single-file output")
	flagRaw         = pflag.BoolP("raw", "r", false, "suppress source-position directives")
	flagVerbose     = pflag.BoolP("verbose", "m", false, "verbose progress on stdout")
	flagLog         = pflag.StringP("log", "l", "", "diagnostic log file, or - for stdout")
	flagDump        = pflag.StringP("dump", "g", "", "emit grammar dump to this file and exit")
	flagVersion     = pflag.BoolP("version", "v", false, "print version, exit")
)

// projectConfig is the shape of an optional .yantra.toml: command-line
// flags left at their zero value fall back to whatever it sets.
type projectConfig struct {
	Encoding    string `toml:"encoding"`
	OutDir      string `toml:"outdir"`
	BaseName    string `toml:"name"`
	Amalgamated bool   `toml:"amalgamated"`
	Raw         bool   `toml:"raw"`
}

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	if *flagVersion {
		fmt.Println(version)
		return exitSuccess
	}

	cfg := loadProjectConfig(".yantra.toml")
	applyProjectDefaults(cfg)

	log := buildLogger()

	src, file, err := readGrammarSource()
	if err != nil {
		log.Error().Err(err).Msg("could not read grammar source")
		return exitFailure
	}

	gen := yantra.New()
	gen.Log = log
	gen.Amalgamated = *flagAmalgam
	gen.PreBuild = applyEncodingOverride

	var run *yantra.Run
	if filepath.Ext(file) == ".md" {
		run, err = gen.GenerateFromMarkdown([]byte(src), file)
	} else {
		run, err = gen.GenerateFromSource(src, file)
	}
	if err != nil {
		reportError(log, err)
		return exitFailure
	}

	if *flagDump != "" {
		if err := writeFile(*flagDump, run.Grammar.Dump()); err != nil {
			log.Error().Err(err).Msg("could not write grammar dump")
			return exitFailure
		}
		return exitSuccess
	}

	if err := writeOutput(run); err != nil {
		log.Error().Err(err).Msg("could not write generated output")
		return exitFailure
	}

	if *flagVerbose {
		fmt.Fprintf(os.Stdout, "generated %d parser state(s) for %q\n", len(run.Grammar.ItemSets), run.Grammar.StartRule)
	}
	return exitSuccess
}

func loadProjectConfig(path string) projectConfig {
	var cfg projectConfig
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring malformed %s: %s\n", path, err)
	}
	return cfg
}

func applyProjectDefaults(cfg projectConfig) {
	if *flagEncoding == "" && cfg.Encoding != "" {
		*flagEncoding = cfg.Encoding
	}
	if !pflag.Lookup("outdir").Changed && cfg.OutDir != "" {
		*flagOutDir = cfg.OutDir
	}
	if *flagBaseName == "" && cfg.BaseName != "" {
		*flagBaseName = cfg.BaseName
	}
	if !pflag.Lookup("amalgamated").Changed && cfg.Amalgamated {
		*flagAmalgam = true
	}
	if !pflag.Lookup("raw").Changed && cfg.Raw {
		*flagRaw = true
	}
}

func buildLogger() zerolog.Logger {
	switch *flagLog {
	case "":
		return zerolog.Nop()
	case "-":
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	default:
		f, err := os.Create(*flagLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %s\n", *flagLog, err)
			return zerolog.Nop()
		}
		return zerolog.New(f).With().Timestamp().Logger()
	}
}

func readGrammarSource() (src, file string, err error) {
	switch {
	case *flagGrammarFile != "":
		data, readErr := os.ReadFile(*flagGrammarFile)
		if readErr != nil {
			return "", "", gerrors.Wrap(gerrors.ErrorOpeningSrc, gerrors.Pos{File: *flagGrammarFile}, "could not open grammar file", readErr)
		}
		return string(data), *flagGrammarFile, nil
	case *flagGrammarStr != "":
		return *flagGrammarStr, "<argument>", nil
	default:
		return "", "", gerrors.New(gerrors.ErrorOpeningSrc, gerrors.Pos{}, "no grammar source given; use -f or -s")
	}
}

func reportError(log zerolog.Logger, err error) {
	var gerr *gerrors.Error
	if ge, ok := err.(*gerrors.Error); ok {
		gerr = ge
	}
	if gerr != nil {
		log.Error().Str("kind", string(gerr.Kind())).Str("pos", gerr.Pos().String()).Msg(gerr.Error())
		fmt.Fprintf(os.Stderr, "%s: %s\n", gerr.Pos().String(), gerr.Error())
		return
	}
	log.Error().Err(err).Msg("generation failed")
	fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
}

func writeOutput(run *yantra.Run) error {
	base := *flagBaseName
	if base == "" {
		base = run.Grammar.Class
	}
	if base == "" {
		base = "parser"
	}
	if err := os.MkdirAll(*flagOutDir, 0o755); err != nil {
		return err
	}

	if *flagAmalgam {
		return writeFile(filepath.Join(*flagOutDir, base+".go"), run.Output.Header)
	}

	if err := writeFile(filepath.Join(*flagOutDir, base+".go"), run.Output.Header); err != nil {
		return err
	}
	return writeFile(filepath.Join(*flagOutDir, base+"_impl.go"), run.Output.Source)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
