package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/godilite/feedback-insights/internal/feedback"
)

const (
	loadTimeout = 10 * time.Second
)

var (
	ErrNotApplicable = errors.New("operation not applicable to source")
	ErrNoRespondents = errors.New("table carries no NPS respondent classes")
	errNoHandle      = errors.New("no handle configured")
)

// commentSources are the sources with a comment tab, in display order.
var commentSources = []feedback.Source{
	feedback.SourceSurvey,
	feedback.SourceTrustpilot,
	feedback.SourceTwitter,
}

// Tables holds loaded tables keyed by source.
type Tables map[feedback.Source]*feedback.Table

// InsightsService loads feedback tables and turns them into chart series.
type InsightsService struct {
	loader    TableLoader
	handles   map[feedback.Source]string
	positions map[feedback.Source][]int
	colors    ColorMap
	recorder  LoadRecorder
	logger    *zap.Logger
}

type Option func(*InsightsService)

// WithRecorder reports every table load to r.
func WithRecorder(r LoadRecorder) Option {
	return func(s *InsightsService) { s.recorder = r }
}

// WithColors replaces the default palette. The map must cover every category.
func WithColors(c ColorMap) Option {
	return func(s *InsightsService) { s.colors = c }
}

// NewInsightsService creates a new InsightsService instance.
func NewInsightsService(
	loader TableLoader,
	handles map[feedback.Source]string,
	positions map[feedback.Source][]int,
	logger *zap.Logger,
	opts ...Option,
) *InsightsService {
	if loader == nil {
		panic("loader must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}

	s := &InsightsService{
		loader:    loader,
		handles:   handles,
		positions: positions,
		colors:    DefaultColorMap(),
		logger:    logger.Named("insights"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.colors.Validate(); err != nil {
		panic(fmt.Sprintf("color map is not total: %v", err))
	}
	return s
}

func (s *InsightsService) load(ctx context.Context, source feedback.Source) (*feedback.Table, error) {
	handle, ok := s.handles[source]
	if !ok || handle == "" {
		return nil, &feedback.LoadError{Source: source, Err: errNoHandle}
	}

	loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	started := time.Now()
	table, err := s.loader.Load(loadCtx, source, handle)
	elapsed := time.Since(started)

	if s.recorder != nil {
		s.recorder.ObserveLoad(string(source), table.Len(), err, elapsed)
	}
	if err != nil {
		s.logger.Error("failed to load table",
			zap.String("source", string(source)),
			zap.String("handle", handle),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("loaded table",
		zap.String("source", string(source)),
		zap.Int("records", table.Len()),
		zap.Duration("elapsed", elapsed))
	return table, nil
}

// loadAll loads sources in parallel. A failing source never prevents the
// others from loading.
func (s *InsightsService) loadAll(ctx context.Context, sources []feedback.Source) (Tables, map[feedback.Source]error) {
	tables := make([]*feedback.Table, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			tables[i], errs[i] = s.load(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	out := make(Tables, len(sources))
	failed := make(map[feedback.Source]error)
	for i, src := range sources {
		if errs[i] != nil {
			failed[src] = errs[i]
			continue
		}
		out[src] = tables[i]
	}
	return out, failed
}

// LoadAll loads every configured source. The returned error joins the
// failures; the tables that did load are returned regardless.
func (s *InsightsService) LoadAll(ctx context.Context) (Tables, error) {
	tables, failed := s.loadAll(ctx, feedback.Sources)
	if len(failed) == 0 {
		return tables, nil
	}
	errs := make([]error, 0, len(failed))
	for _, src := range feedback.Sources {
		if err, ok := failed[src]; ok {
			errs = append(errs, err)
		}
	}
	return tables, errors.Join(errs...)
}

// SentimentSeries returns the mean sentiment per month and polarity.
func (s *InsightsService) SentimentSeries(ctx context.Context, source feedback.Source) (SeriesDescriptor, error) {
	if source == feedback.SourceTransaction {
		return SeriesDescriptor{}, fmt.Errorf("%w: %s carries business volume, not sentiment", ErrNotApplicable, source)
	}
	table, err := s.load(ctx, source)
	if err != nil {
		return SeriesDescriptor{}, err
	}
	return s.sentiment(table)
}

// DistributionSeries returns the number of records per category.
func (s *InsightsService) DistributionSeries(ctx context.Context, source feedback.Source) (SeriesDescriptor, error) {
	table, err := s.load(ctx, source)
	if err != nil {
		return SeriesDescriptor{}, err
	}
	return s.distribution(table)
}

// NegativeComments returns the curated selection of negative comments.
func (s *InsightsService) NegativeComments(ctx context.Context, source feedback.Source) ([]string, error) {
	if len(s.positions[source]) == 0 {
		return nil, fmt.Errorf("%w: no comment positions configured for %s", ErrNotApplicable, source)
	}
	table, err := s.load(ctx, source)
	if err != nil {
		return nil, err
	}
	return s.comments(table)
}

// VolumeSeries returns business volume per product family, one frame per week.
func (s *InsightsService) VolumeSeries(ctx context.Context) (SeriesDescriptor, error) {
	table, err := s.load(ctx, feedback.SourceTransaction)
	if err != nil {
		return SeriesDescriptor{}, err
	}
	return s.volume(table)
}

// NetPromoterScore computes the NPS of the survey responses.
func (s *InsightsService) NetPromoterScore(ctx context.Context) (NPSSummary, error) {
	table, err := s.load(ctx, feedback.SourceSurvey)
	if err != nil {
		return NPSSummary{}, err
	}
	return NetPromoterScore(table)
}

// Dashboard loads every source, then builds all charts. Failures are
// reported per source and never abort the other sections.
func (s *InsightsService) Dashboard(ctx context.Context) (Dashboard, error) {
	tables, failed := s.loadAll(ctx, feedback.Sources)
	if err := ctx.Err(); err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Sources: make([]SourceInsights, 0, len(commentSources)),
		Errors:  make(map[feedback.Source]string),
	}
	for src, err := range failed {
		d.Errors[src] = err.Error()
	}

	// A polarity labelled survey has no score to show, which is not a failure.
	if survey, ok := tables[feedback.SourceSurvey]; ok && feedback.IsNPS(survey.Categories()) {
		if nps, err := NetPromoterScore(survey); err != nil {
			d.Errors[feedback.SourceSurvey] = err.Error()
		} else {
			d.NPS = &nps
		}
	}

	if tx, ok := tables[feedback.SourceTransaction]; ok {
		if vol, err := s.volume(tx); err != nil {
			d.Errors[feedback.SourceTransaction] = err.Error()
		} else {
			d.Volume = &vol
		}
	}

	for _, src := range commentSources {
		table, ok := tables[src]
		if !ok {
			continue
		}
		section, err := s.sourceInsights(table)
		if err != nil {
			s.logger.Error("failed to build source section", zap.String("source", string(src)), zap.Error(err))
			d.Errors[src] = err.Error()
			continue
		}
		d.Sources = append(d.Sources, section)
	}

	if len(d.Errors) == 0 {
		d.Errors = nil
	}
	return d, nil
}

func (s *InsightsService) sourceInsights(table *feedback.Table) (SourceInsights, error) {
	sentiment, err := s.sentiment(table)
	if err != nil {
		return SourceInsights{}, err
	}
	dist, err := s.distribution(table)
	if err != nil {
		return SourceInsights{}, err
	}
	out := SourceInsights{Source: table.Source, Sentiment: sentiment, Distribution: dist}
	if len(s.positions[table.Source]) > 0 {
		comments, err := s.comments(table)
		if err != nil {
			return SourceInsights{}, err
		}
		out.NegativeComments = comments
	}
	return out, nil
}

func (s *InsightsService) sentiment(table *feedback.Table) (SeriesDescriptor, error) {
	rows := AggregateMean(table)
	if len(rows) == 0 {
		return SeriesDescriptor{}, fmt.Errorf("%s: %w", table.Source, feedback.ErrNoRecords)
	}
	desc, err := BuildSeries(rows, SentimentAxis(table.Source, table.Categories()), s.colors)
	if err != nil {
		return SeriesDescriptor{}, fmt.Errorf("sentiment series for %s: %w", table.Source, err)
	}
	return desc, nil
}

func (s *InsightsService) distribution(table *feedback.Table) (SeriesDescriptor, error) {
	counts := CountByCategory(table)
	if len(counts) == 0 {
		return SeriesDescriptor{}, fmt.Errorf("%s: %w", table.Source, feedback.ErrNoRecords)
	}
	desc, err := BuildDistributionSeries(counts, DistributionAxis(table.Categories()), s.colors)
	if err != nil {
		return SeriesDescriptor{}, fmt.Errorf("distribution series for %s: %w", table.Source, err)
	}
	return desc, nil
}

func (s *InsightsService) volume(table *feedback.Table) (SeriesDescriptor, error) {
	rows := AggregateVolume(table)
	if len(rows) == 0 {
		return SeriesDescriptor{}, fmt.Errorf("%s: %w", table.Source, feedback.ErrNoRecords)
	}
	desc, err := BuildVolumeSeries(rows, VolumeAxis(), s.colors)
	if err != nil {
		return SeriesDescriptor{}, fmt.Errorf("volume series: %w", err)
	}
	return desc, nil
}

func (s *InsightsService) comments(table *feedback.Table) ([]string, error) {
	texts, err := Select(RankNegative(table), s.positions[table.Source])
	if err != nil {
		return nil, fmt.Errorf("negative comments for %s: %w", table.Source, err)
	}
	return texts, nil
}
