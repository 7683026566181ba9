package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/topicmatch"
	"github.com/poiesic/topicmatch/ai"
	"github.com/poiesic/topicmatch/ai/openai"
	"github.com/poiesic/topicmatch/config"
	"github.com/poiesic/topicmatch/embedding"
	"github.com/poiesic/topicmatch/ontology"
	"github.com/poiesic/topicmatch/vectorize"
)

// openManager creates a manager over the store and loads its documents.
func openManager(ctx context.Context, c *cli.Context, st *store, opts ...topicmatch.Option) (*topicmatch.Manager, error) {
	p, err := parserFor(c.String("format"))
	if err != nil {
		return nil, err
	}
	m, err := topicmatch.NewManager(p, append([]topicmatch.Option{topicmatch.WithDocumentRepository(st.docs)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if _, err := m.LoadDocuments(ctx); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

func registerCommand(c *cli.Context) error {
	ctx := context.Background()

	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("at least one file is required")
	}
	if c.String("label") != "" && len(files) > 1 {
		return fmt.Errorf("--label needs exactly one file")
	}

	texts := make([]topicmatch.Text, len(files))
	for i, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		label := c.String("label")
		if label == "" {
			label = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		}
		texts[i] = topicmatch.Text{Label: label, Text: string(data)}
	}

	st, err := openStore(c.String("db"))
	if err != nil {
		return err
	}
	defer st.Close()

	var opts []topicmatch.Option
	if c.String("embedding-model") != "" {
		provider, err := openProvider(c)
		if err != nil {
			return err
		}
		opts = append(opts, topicmatch.WithProvider(st.vectors, provider))
	}
	m, err := openManager(ctx, c, st, opts...)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.RegisterDocuments(ctx, texts...); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	for _, text := range texts {
		fmt.Fprintf(c.App.Writer, "registered %s\n", text.Label)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	st, err := openStore(c.String("db"))
	if err != nil {
		return err
	}
	defer st.Close()

	labels, err := st.docs.Labels(context.Background())
	if err != nil {
		return err
	}
	for _, label := range labels {
		fmt.Fprintln(c.App.Writer, label)
	}
	return nil
}

func removeCommand(c *cli.Context) error {
	ctx := context.Background()

	labels := c.Args().Slice()
	if len(labels) == 0 {
		return fmt.Errorf("at least one label is required")
	}

	st, err := openStore(c.String("db"))
	if err != nil {
		return err
	}
	defer st.Close()
	m, err := openManager(ctx, c, st)
	if err != nil {
		return err
	}
	defer m.Close()

	for _, label := range labels {
		if err := m.RemoveDocument(ctx, label); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "removed %s\n", label)
	}
	return nil
}

func removeAllCommand(c *cli.Context) error {
	ctx := context.Background()

	st, err := openStore(c.String("db"))
	if err != nil {
		return err
	}
	defer st.Close()
	m, err := openManager(ctx, c, st)
	if err != nil {
		return err
	}
	defer m.Close()

	count := len(m.DocumentLabels())
	if err := m.RemoveAllDocuments(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "removed %d documents\n", count)
	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("exactly one query file is required")
	}
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read query: %w", err)
	}
	query := string(data)

	cfg, err := loadOptions(c.String("config"), c.StringSlice("option"))
	if err != nil {
		return err
	}
	opts := []topicmatch.Option{topicmatch.WithConfig(cfg)}

	if path := c.String("ontology"); path != "" {
		graph, err := ontology.LoadYAML(path)
		if err != nil {
			return err
		}
		opts = append(opts, topicmatch.WithOntology(graph))
	}

	st, err := openStore(c.String("db"))
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.OverallSimilarityThreshold < 1 {
		oracleOpts := []embedding.VectorOption{embedding.WithRepository(st.vectors)}
		if c.String("embedding-model") != "" {
			provider, err := openProvider(c)
			if err != nil {
				return err
			}
			defer provider.Close()
			// lemmas without a stored vector are embedded once and kept
			oracleOpts = append(oracleOpts,
				embedding.WithEmbedder(provider.Embedder()), embedding.WithStoreComputed(true))
		}
		oracle, err := embedding.NewVectorOracle(oracleOpts...)
		if err != nil {
			return err
		}
		defer oracle.Close()
		opts = append(opts, topicmatch.WithOracle(oracle))
	}

	m, err := openManager(ctx, c, st, opts...)
	if err != nil {
		return err
	}
	defer m.Close()

	if !c.Bool("json") {
		results, err := m.TopicMatch(ctx, query)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(c.App.ErrWriter, "no matches")
		}
		for _, r := range results {
			fmt.Fprintf(c.App.Writer, "%s\t%s\t%.2f\t%s\n", r.Rank, r.DocumentLabel, r.Score, r.Text)
		}
		return nil
	}

	dicts, err := m.TopicMatchAsDictionaries(ctx, query)
	if err != nil {
		return err
	}
	// report the query as plain text rather than as its parse
	p, _ := parserFor(c.String("format"))
	if parsed, err := p.Parse(ctx, query, "query"); err == nil {
		for i := range dicts {
			dicts[i].TextToMatch = parsed.Text
		}
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(dicts)
}

// newProvider connects to the embedding service.
var newProvider = func(cfg *ai.Config) (ai.AIProvider, error) {
	return openai.NewProvider(cfg)
}

// openProvider builds the AI configuration from the embedding flags. The
// caller closes the provider.
func openProvider(c *cli.Context) (ai.AIProvider, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	provider, err := newProvider(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI provider: %w", err)
	}
	return provider, nil
}

func optionsCommand(c *cli.Context) error {
	defaults := config.Default().Map()
	for _, name := range config.Names() {
		fmt.Fprintf(c.App.Writer, "%s: %v\n", name, defaults[name])
	}
	return nil
}

func vectorizeCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.String("embedding-model") == "" {
		return fmt.Errorf("embedding-model is required")
	}

	vectorizeConfig := &vectorize.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Workers:        c.Int("workers"),
		Force:          c.Bool("force"),
	}
	if vectorizeConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if vectorizeConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if vectorizeConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}
	if vectorizeConfig.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}

	provider, err := openProvider(c)
	if err != nil {
		return err
	}
	defer provider.Close()

	st, err := openStore(c.String("db"))
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", c.String("db"))
	fmt.Fprintf(c.App.ErrWriter, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(c.App.ErrWriter, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(c.App.ErrWriter)

	vectorizer := vectorize.NewVectorizer(st.docs, st.vectors, provider.Embedder(), vectorizeConfig, c.App.ErrWriter)
	if _, err := vectorizer.Run(ctx); err != nil {
		return fmt.Errorf("vectorization failed: %w", err)
	}
	return nil
}
