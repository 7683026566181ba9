package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/poiesic/topicmatch/config"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/parser"
	"github.com/poiesic/topicmatch/parser/conll"
	"github.com/poiesic/topicmatch/parser/spacyjson"
	"github.com/poiesic/topicmatch/storage"
	"github.com/poiesic/topicmatch/storage/badger"
)

// envPrefix is the environment variable prefix of matching options,
// for example TOPICMATCH_NUMBER_OF_RESULTS.
const envPrefix = "TOPICMATCH"

// loadOptions reads matching options from an optional YAML file and the
// environment, then applies name=value overrides.
func loadOptions(path string, overrides []string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, name := range config.Names() {
		if err := v.BindEnv(name); err != nil {
			return nil, err
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	values := v.AllSettings()
	for _, override := range overrides {
		name, value, ok := strings.Cut(override, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not name=value", config.ErrInvalidValue, override)
		}
		values[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return config.FromMap(values)
}

// parserFor returns the parser of a named format. An empty format detects
// spaCy JSON by its leading brace and falls back to CoNLL-U.
func parserFor(format string) (parser.Parser, error) {
	switch strings.ToLower(format) {
	case "conll", "conllu", "conll-u":
		return conll.Parser{}, nil
	case "spacy", "json":
		return spacyjson.Parser{}, nil
	case "":
		return parser.Func(func(ctx context.Context, text, label string) (*core.Document, error) {
			if strings.HasPrefix(strings.TrimSpace(text), "{") {
				return spacyjson.Parser{}.Parse(ctx, text, label)
			}
			return conll.Parser{}.Parse(ctx, text, label)
		}), nil
	}
	return nil, fmt.Errorf("unknown format %q: must be one of conll, spacy", format)
}

// store holds the repositories of an open database.
type store struct {
	backend *badger.Backend
	docs    storage.DocumentRepository
	vectors storage.VectorRepository
}

func openStore(path string) (*store, error) {
	backend, err := badger.OpenBackend(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	docs, vectors, backend, err := badger.NewRepositories(backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create repositories: %w", err)
	}
	return &store{backend: backend, docs: docs, vectors: vectors}, nil
}

func (s *store) Close() error {
	s.vectors.Close()
	s.docs.Close()
	return s.backend.Close()
}
