package config

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/textproc/internal/logger"
	"github.com/cognicore/textproc/pkg/textproc/lexicon"
	"github.com/cognicore/textproc/pkg/textproc/preprocess"
	"github.com/cognicore/textproc/pkg/textproc/store"
	"github.com/cognicore/textproc/pkg/textproc/store/sqlite"
	"github.com/cognicore/textproc/pkg/textproc/tagging"
	"github.com/cognicore/textproc/pkg/textproc/tagging/dict"
	"github.com/cognicore/textproc/pkg/textproc/tokenize"
)

// Loader constructs tagging components from a Config
type Loader struct {
	Config *Config

	// Store overrides Config.Store when set; the loader does not close it.
	Store store.Store
}

// Components holds all loaded configuration components
type Components struct {
	Tokenizer    tokenize.Tokenizer
	Lexicon      *lexicon.Lexicon
	StopFilter   *preprocess.StopFilter
	Dictionaries *dict.Tagger
	Tagger       *tagging.MultiTagger
	Workers      int
}

// Load reads all referenced files and returns initialized components
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.GetLogger()
	comp := &Components{Workers: cfg.Workers}

	// Tokenizer
	tok, err := tokenize.Get(cfg.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: %w", err)
	}
	if cfg.TokenizerCache.Enabled {
		tok = tokenize.NewCached(tok, cfg.TokenizerCache.TTL, cfg.TokenizerCache.Cleanup)
	}
	comp.Tokenizer = tok

	// Load lexicon
	if cfg.Lexicon != "" {
		lex, err := lexicon.LoadFromYAML(cfg.Path(cfg.Lexicon))
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	}

	// Load stoplist
	if cfg.Stoplist != "" {
		sl, err := preprocess.LoadStoplist(cfg.Path(cfg.Stoplist))
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.StopFilter = preprocess.NewStopFilter(sl.Terms)
	} else {
		comp.StopFilter = preprocess.NewStopFilter(nil)
	}

	// Dictionaries from the file, then from the store
	configs, err := cfg.DictionaryConfigurations()
	if err != nil {
		return nil, fmt.Errorf("load dictionaries: %w", err)
	}
	stored, err := l.storedConfigurations(ctx, cfg)
	if err != nil {
		return nil, err
	}
	configs = append(configs, stored...)

	comp.Dictionaries, err = dict.New(tok, configs, dict.Options{Lexicon: comp.Lexicon})
	if err != nil {
		return nil, fmt.Errorf("build dictionaries: %w", err)
	}
	comp.Tagger, err = tagging.NewMultiTagger(comp.Dictionaries, tok, cfg.SetUnmodifiable)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"tokenizer":    cfg.Tokenizer,
		"dictionaries": len(configs),
		"entities":     comp.Dictionaries.Len(),
		"workers":      comp.Workers,
	}).Debug("components loaded")
	return comp, nil
}

func (l *Loader) storedConfigurations(ctx context.Context, cfg *Config) ([]dict.Configuration, error) {
	st := l.Store
	if st == nil {
		if cfg.Store == "" {
			return nil, nil
		}
		opened, err := sqlite.OpenSQLite(ctx, cfg.Path(cfg.Store))
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		defer opened.Close()
		st = opened
	}

	configs, err := store.Configurations(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("load stored dictionaries: %w", err)
	}
	return configs, nil
}
