package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"NewsTriage/internal/domain"
	"NewsTriage/internal/logging"
	"NewsTriage/internal/ports"
	"NewsTriage/internal/triage"
)

// NoArticlesNotice is reported when the input artifact holds no articles.
const NoArticlesNotice = "No articles to process. Fetch news first."

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Store    ports.ArtifactStore
	Analyzer ports.Analyzer
	Router   *triage.Router
	Refiner  *triage.Refiner
	// Archive is optional; nil disables archiving.
	Archive ports.ArticleArchive
	// Workers above 1 analyzes articles concurrently.
	Workers int
	Logger  *slog.Logger
	// NewRunID overrides run identifier generation.
	NewRunID func() string
}

// Report summarizes one batch run.
type Report struct {
	RunID          string
	Loaded         int
	Skipped        int
	Analyzed       int
	LowConfidence  int
	Featured       int
	Best           int
	Worst          int
	Inconclusive   int
	Dropped        int
	Objective      int
	PreviouslySeen int
	Archived       int
	// Empty is set when the run stopped because there was nothing to process.
	Empty  bool
	Notice string
}

// Pipeline implements the batch triage workflow.
type Pipeline struct {
	store    ports.ArtifactStore
	analyzer ports.Analyzer
	router   *triage.Router
	refiner  *triage.Refiner
	archive  ports.ArticleArchive
	workers  int
	logger   *slog.Logger
	newRunID func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		store:    deps.Store,
		analyzer: deps.Analyzer,
		router:   deps.Router,
		refiner:  deps.Refiner,
		archive:  deps.Archive,
		workers:  deps.Workers,
		logger:   deps.Logger,
		newRunID: deps.NewRunID,
	}
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	if p.newRunID == nil {
		p.newRunID = uuid.NewString
	}
	if p.router == nil {
		p.router = triage.NewRouter(domain.PolicyAnnotate)
	}
	if p.refiner == nil {
		p.refiner = triage.NewRefiner(domain.NeutralSentimentLabel)
	}
	if p.workers < 1 {
		p.workers = 1
	}
	return p
}

type slot struct {
	article domain.AnalyzedArticle
	ok      bool
}

// Run loads the input, analyzes and routes every article, refines the
// objective set and persists both artifacts. Load failures abort the run
// before anything is written. Write failures are joined and returned after
// every write was attempted.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: p.newRunID()}
	logger := p.logger.With("run_id", report.RunID)

	raws, err := p.store.LoadArticles(ctx)
	if err != nil {
		return report, fmt.Errorf("load articles: %w", err)
	}
	report.Loaded = len(raws)
	if len(raws) == 0 {
		report.Empty = true
		report.Notice = NoArticlesNotice
		logger.Info(NoArticlesNotice)
		return report, nil
	}

	logger.Info("analyzing articles", "count", len(raws), "workers", p.workers)
	slots, err := p.analyzeAll(ctx, raws)
	if err != nil {
		return report, fmt.Errorf("analyze articles: %w", err)
	}

	buckets := domain.NewBucketSet()
	for i, s := range slots {
		if !s.ok {
			report.Skipped++
			continue
		}
		report.Analyzed++
		if s.article.LowConfidence {
			report.LowConfidence++
		}

		bucket := p.router.Route(s.article)
		logger.Debug("article triaged",
			"index", i+1,
			"total", len(slots),
			"title", s.article.Title,
			"category", s.article.Category,
			"bucket", bucket,
		)
		if bucket == domain.BucketNone {
			report.Dropped++
			continue
		}
		buckets.Add(bucket, s.article)
	}

	objective := p.refiner.Refine(buckets.Featured, buckets.Best)

	report.Featured = len(buckets.Featured)
	report.Best = len(buckets.Best)
	report.Worst = len(buckets.Worst)
	report.Inconclusive = len(buckets.Inconclusive)
	report.Objective = len(objective)

	var errs []error
	if err := p.store.SaveBuckets(ctx, buckets); err != nil {
		errs = append(errs, fmt.Errorf("save buckets: %w", err))
	}
	if err := p.store.SaveObjective(ctx, objective); err != nil {
		errs = append(errs, fmt.Errorf("save objective: %w", err))
	}
	if p.archive != nil {
		if err := p.archiveRun(ctx, report.RunID, buckets, &report); err != nil {
			errs = append(errs, fmt.Errorf("archive: %w", err))
		}
	}

	logger.Info("run finished",
		"analyzed", report.Analyzed,
		"skipped", report.Skipped,
		"featured", report.Featured,
		"best", report.Best,
		"worst", report.Worst,
		"inconclusive", report.Inconclusive,
		"objective", report.Objective,
	)
	return report, errors.Join(errs...)
}

// analyzeAll fills one slot per input index so routing order never depends
// on completion order.
func (p *Pipeline) analyzeAll(ctx context.Context, raws []domain.RawArticle) ([]slot, error) {
	slots := make([]slot, len(raws))

	if p.workers <= 1 {
		for i, raw := range raws {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			article, ok := p.analyzer.Analyze(ctx, raw)
			slots[i] = slot{article: article, ok: ok}
		}
		return slots, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			article, ok := p.analyzer.Analyze(gctx, raw)
			slots[i] = slot{article: article, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots, nil
}

func (p *Pipeline) archiveRun(ctx context.Context, runID string, buckets domain.BucketSet, report *Report) error {
	var keys []string
	buckets.Each(func(_ domain.Bucket, a domain.AnalyzedArticle) {
		keys = append(keys, a.IdentityKey())
	})

	seen, err := p.archive.Seen(ctx, runID, keys)
	if err != nil {
		p.logger.Warn("archive lookup failed", "run_id", runID, "error", err)
	} else {
		report.PreviouslySeen = len(seen)
	}

	var errs []error
	buckets.Each(func(b domain.Bucket, a domain.AnalyzedArticle) {
		if err := p.archive.SaveTriaged(ctx, runID, b, a); err != nil {
			errs = append(errs, err)
			return
		}
		report.Archived++
	})
	return errors.Join(errs...)
}
