package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/topicmatch/activation"
	"github.com/poiesic/topicmatch/config"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/match"
	"github.com/poiesic/topicmatch/parser"
	"github.com/poiesic/topicmatch/phraselet"
	"github.com/poiesic/topicmatch/topic"
)

// QueryLabel is the document label given to parsed queries.
const QueryLabel = "query"

// TopicMatcher runs the topic-matching pipeline.
type TopicMatcher struct {
	parser  parser.Parser
	builder *phraselet.Builder
	matcher *match.Matcher
	logger  *slog.Logger
}

// Option configures a TopicMatcher.
type Option func(*TopicMatcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *TopicMatcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger
		return nil
	}
}

// WithBuilder sets the phraselet builder, for example one carrying an ontology.
// Default is phraselet.NewBuilder().
func WithBuilder(builder *phraselet.Builder) Option {
	return func(t *TopicMatcher) error {
		if builder != nil {
			t.builder = builder
		}
		return nil
	}
}

// NewTopicMatcher creates a new topic matcher.
func NewTopicMatcher(p parser.Parser, m *match.Matcher, opts ...Option) (*TopicMatcher, error) {
	if p == nil {
		return nil, ErrParserRequired
	}
	if m == nil {
		return nil, ErrMatcherRequired
	}

	t := &TopicMatcher{
		parser:  p,
		builder: phraselet.NewBuilder(),
		matcher: m,
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Match finds the passages of docs that best match the query.
func (t *TopicMatcher) Match(ctx context.Context, query string, docs []*core.Document, cfg *config.Config) ([]core.TopicMatch, error) {
	return t.MatchWithMonitor(ctx, query, docs, cfg, nil)
}

// MatchWithMonitor finds the passages of docs that best match the query.
// The monitor receives callbacks at each stage of the pipeline.
func (t *TopicMatcher) MatchWithMonitor(ctx context.Context, query string, docs []*core.Document, cfg *config.Config, monitor Monitor) ([]core.TopicMatch, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	monitor.Start(query)
	if blank(query) || len(docs) == 0 {
		monitor.Finish(nil)
		return []core.TopicMatch{}, nil
	}

	parsed, err := t.parser.Parse(ctx, query, QueryLabel)
	if err != nil {
		t.logger.Error("error parsing query", "query", query, "err", err)
		return nil, err
	}
	return t.matchParsed(ctx, parsed, docs, cfg, monitor)
}

// MatchParsed runs an already parsed query.
func (t *TopicMatcher) MatchParsed(ctx context.Context, query *core.Document, docs []*core.Document, cfg *config.Config) ([]core.TopicMatch, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	monitor := &noopMonitor{}
	monitor.Start(query.Text)
	return t.matchParsed(ctx, query, docs, cfg, monitor)
}

// Dictionaries runs the query and renders the results with character offsets.
func (t *TopicMatcher) Dictionaries(ctx context.Context, query string, docs []*core.Document, cfg *config.Config) ([]core.TopicMatchDictionary, error) {
	matches, err := t.Match(ctx, query, docs, cfg)
	if err != nil {
		return nil, err
	}
	return topic.Dictionaries(matches, docs, query)
}

func (t *TopicMatcher) matchParsed(ctx context.Context, query *core.Document, docs []*core.Document, cfg *config.Config, monitor Monitor) ([]core.TopicMatch, error) {
	monitor.AfterParse(query)

	set, err := t.builder.Build(query, phraselet.TopicMatchingOptions())
	if err != nil {
		t.logger.Error("error extracting phraselets", "err", err)
		return nil, err
	}
	monitor.AfterPhraseletExtraction(set)
	if set.Len() == 0 || len(docs) == 0 {
		monitor.Finish(nil)
		return []core.TopicMatch{}, nil
	}

	matches, err := t.matcher.Match(ctx, set, docs, cfg)
	if err != nil {
		return nil, err
	}
	monitor.AfterStructuralMatching(matches)

	records := activation.NewScorer(cfg, activation.WithLogger(t.logger)).Score(matches)
	monitor.AfterActivation(records)

	results, err := topic.NewAssembler(cfg, topic.WithLogger(t.logger)).Assemble(records, docs)
	if err != nil {
		// a record naming a document outside docs is a bookkeeping bug
		panic(err)
	}
	if results == nil {
		results = []core.TopicMatch{}
	}
	monitor.Finish(results)

	t.logger.Debug("topic match complete",
		"phraselets", set.Len(), "matches", len(matches), "results", len(results))
	return results, nil
}

func blank(text string) bool {
	return strings.TrimSpace(text) == ""
}
