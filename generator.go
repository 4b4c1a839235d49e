// Package yantra drives the full grammar-to-parser pipeline: reading a
// grammar source through the front-end, synthesising a lexer and an
// LALR(1)-style parser against the resulting Grammar Model, and emitting
// generated Go source from the enriched model.
package yantra

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kschwaiger/yantra/internal/emit"
	yencoding "github.com/kschwaiger/yantra/internal/encoding"
	"github.com/kschwaiger/yantra/internal/frontend"
	"github.com/kschwaiger/yantra/internal/grammar"
	"github.com/kschwaiger/yantra/internal/lalr"
	"github.com/kschwaiger/yantra/internal/lexgen"
)

// Generator runs the four-phase pipeline (front-end, lexer synthesis,
// parser synthesis, emission) against one grammar source, logging each
// phase's outcome through a zerolog.Logger the caller supplies.
type Generator struct {
	Log zerolog.Logger

	Amalgamated bool

	// PreBuild, if set, runs on the parsed Grammar before ASCII validation
	// and before lexer/parser synthesis — the hook the CLI's `-c` encoding
	// override uses, since emit.Generate and the ASCII validator both read
	// Grammar.Encoding and must see the overridden value, not whatever
	// %encoding the source itself declared.
	PreBuild func(*grammar.Grammar)
}

// New returns a Generator whose default logger writes timestamped,
// human-readable console lines to stderr, whatever stderr is attached to.
func New() *Generator {
	return &Generator{Log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()}
}

// Run is one invocation of the pipeline, identified by a fresh run id for
// correlating its log lines.
type Run struct {
	ID      string
	Grammar *grammar.Grammar
	Output  emit.Result
}

// GenerateFromSource runs the whole pipeline over an in-memory grammar
// source and returns the generated output, or the first error from
// whichever phase failed.
func (g *Generator) GenerateFromSource(src, file string) (*Run, error) {
	run := &Run{ID: uuid.NewString()}
	log := g.Log.With().Str("run_id", run.ID).Str("file", file).Logger()

	log.Info().Msg("parsing grammar source")
	gram, err := frontend.Parse(src, file)
	if err != nil {
		log.Error().Err(err).Msg("front-end failed")
		return nil, err
	}
	run.Grammar = gram

	if g.PreBuild != nil {
		g.PreBuild(gram)
	}

	if gram.Encoding == grammar.EncodingASCII {
		if _, err := yencoding.ValidateASCII(src, file); err != nil {
			log.Error().Err(err).Msg("grammar source violates its declared ASCII encoding")
			return nil, err
		}
	}

	log.Info().
		Int("tokens", len(gram.RegexSets)).
		Int("rulesets", len(gram.RuleSets)).
		Msg("building lexer")
	if err := lexgen.Build(gram); err != nil {
		log.Error().Err(err).Msg("lexer synthesis failed")
		return nil, err
	}
	lexgen.Optimize(gram)
	lexgen.MarkShadows(gram)

	log.Info().Msg("building parser tables")
	if err := lalr.Build(gram); err != nil {
		log.Error().Err(err).Msg("parser synthesis failed")
		return nil, err
	}
	log.Info().Int("states", len(gram.ItemSets)).Msg("parser tables built")

	log.Info().Msg("emitting generated source")
	out, err := emit.Generate(gram, emit.Options{Amalgamated: g.Amalgamated})
	if err != nil {
		log.Error().Err(err).Msg("emission failed")
		return nil, err
	}
	run.Output = out

	log.Info().Msg("generation complete")
	return run, nil
}

// GenerateFromMarkdown is GenerateFromSource for a literate `.md` grammar
// source (§"literate grammar").
func (g *Generator) GenerateFromMarkdown(src []byte, file string) (*Run, error) {
	run := &Run{ID: uuid.NewString()}
	log := g.Log.With().Str("run_id", run.ID).Str("file", file).Logger()

	log.Info().Msg("extracting literate grammar blocks")
	gram, err := frontend.ParseMarkdown(src, file)
	if err != nil {
		log.Error().Err(err).Msg("front-end failed")
		return nil, err
	}
	run.Grammar = gram

	if g.PreBuild != nil {
		g.PreBuild(gram)
	}

	if err := lexgen.Build(gram); err != nil {
		return nil, err
	}
	lexgen.Optimize(gram)
	lexgen.MarkShadows(gram)

	if err := lalr.Build(gram); err != nil {
		return nil, err
	}

	out, err := emit.Generate(gram, emit.Options{Amalgamated: g.Amalgamated})
	if err != nil {
		return nil, err
	}
	run.Output = out
	return run, nil
}
