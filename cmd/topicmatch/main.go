// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "topicmatch",
		Usage: "Semantic topic matching over parsed documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "Register parsed documents, one per file",
				ArgsUsage: "FILE...",
				Action:    registerCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					formatFlag(),
					&cli.StringFlag{
						Name:  "label",
						Usage: "Document label when registering a single file (defaults to the file name)",
					},
				}, embeddingFlags()...),
			},
			{
				Name:   "list",
				Usage:  "List registered document labels",
				Action: listCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:      "remove",
				Usage:     "Remove registered documents",
				ArgsUsage: "LABEL...",
				Action:    removeCommand,
				Flags:     []cli.Flag{dbFlag()},
			},
			{
				Name:   "remove-all",
				Usage:  "Remove every registered document",
				Action: removeAllCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:      "match",
				Usage:     "Find the passages that best match a parsed query",
				ArgsUsage: "QUERY-FILE",
				Action:    matchCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					formatFlag(),
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML file of matching options",
					},
					&cli.StringSliceFlag{
						Name:    "option",
						Aliases: []string{"o"},
						Usage:   "Matching option as name=value; overrides the config file",
					},
					&cli.StringFlag{
						Name:  "ontology",
						Usage: "YAML ontology of hyponyms and synonyms",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON dictionaries",
					},
				}, embeddingFlags()...),
			},
			{
				Name:   "options",
				Usage:  "Print the matching options and their defaults",
				Action: optionsCommand,
			},
			{
				Name:   "vectorize",
				Usage:  "Store embedding vectors for the lemmas of registered documents",
				Action: vectorizeCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of lemmas to embed in each call",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N lemmas",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of batches embedded concurrently",
						Value: 4,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-embed lemmas that already have a vector",
					},
				}, embeddingFlags()...),
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "Parse format of the input files (conll, spacy); detected from the content when empty",
	}
}

func embeddingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
