// Package app assembles the star pipeline: read the input list, resolve
// photometry, estimate temperatures, derive colours, write the result table.
package app

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/go-starcolor/internal/catalog"
	"github.com/askiada/go-starcolor/internal/config"
	"github.com/askiada/go-starcolor/internal/photometry"
	"github.com/askiada/go-starcolor/internal/starcsv"
	"github.com/askiada/go-starcolor/pkg/pipeline"
)

// Options drive a single run.
type Options struct {
	Input    string
	Output   string
	Config   *config.Config
	DrawFile string
	Measure  bool
	Logger   *zap.Logger
}

// item is the payload travelling through the pipeline. The record is
// populated in place; a stage leaves it untouched once a status is set.
type item struct {
	idx   int
	total int
	star  starcsv.Star
	rec   *photometry.StarRecord
}

type runner struct {
	resolver *catalog.Resolver
	logger   *zap.Logger
	counts   map[photometry.Status]int
}

// Run executes the whole batch. Individual star failures mark their row and
// never abort the run; only input/output problems do.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	err := cfg.Validate()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	stars, err := readStars(opts.Input)
	if err != nil {
		return err
	}
	if len(stars) == 0 {
		return errors.Errorf("input list %s contains no stars", opts.Input)
	}

	outFile, err := os.Create(opts.Output)
	if err != nil {
		return errors.Wrapf(err, "unable to create output file %s", opts.Output)
	}
	defer outFile.Close()

	writer, err := starcsv.NewWriter(outFile)
	if err != nil {
		return err
	}

	client := catalog.NewClient(cfg.VizierURL, cfg.SimbadURL, time.Duration(cfg.Timeout))
	run := &runner{
		resolver: catalog.NewResolver(client, cfg.Catalogs, cfg.Simbad),
		logger:   logger,
		counts:   make(map[photometry.Status]int),
	}

	var pipeOpts []pipeline.PipelineOption
	if opts.DrawFile != "" {
		pipeOpts = append(pipeOpts, pipeline.PipelineDrawer(opts.DrawFile))
	}
	if opts.Measure {
		pipeOpts = append(pipeOpts, pipeline.PipelineMeasure())
	}

	pipe, err := pipeline.New(ctx, pipeOpts...)
	if err != nil {
		return errors.Wrap(err, "unable to create pipeline")
	}

	rootStep, err := pipeline.AddRootStep(pipe, "star list", func(ctx context.Context, rootChan chan<- *item) error {
		for i, star := range stars {
			it := &item{
				idx:   i + 1,
				total: len(stars),
				star:  star,
				rec:   &photometry.StarRecord{Name: star.Name},
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- it:
			}
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "unable to add star list step")
	}

	// catalogue access stays sequential: one request in flight at a time
	resolveStep, err := pipeline.AddStepOneToOne(pipe, "resolve", rootStep, run.resolve, pipeline.StepConcurrency[*item](1))
	if err != nil {
		return errors.Wrap(err, "unable to add resolve step")
	}

	estimateStep, err := pipeline.AddStepOneToOne(pipe, "estimate", resolveStep, run.estimate)
	if err != nil {
		return errors.Wrap(err, "unable to add estimate step")
	}

	colorizeStep, err := pipeline.AddStepOneToOne(pipe, "colorize", estimateStep, run.colorize)
	if err != nil {
		return errors.Wrap(err, "unable to add colorize step")
	}

	err = pipeline.AddSink(pipe, "write results", colorizeStep, func(_ context.Context, it *item) error {
		run.counts[it.rec.Status]++

		return writer.Write(it.rec)
	})
	if err != nil {
		return errors.Wrap(err, "unable to add sink")
	}

	err = pipe.Run()
	if err != nil {
		return errors.Wrap(err, "pipeline failed")
	}

	err = writer.Flush()
	if err != nil {
		return err
	}

	logMeasure(logger, pipe.Measure())
	logger.Info("results saved",
		zap.String("output", opts.Output),
		zap.Int("stars", len(stars)),
		zap.Int("ok", run.counts[photometry.StatusOK]),
		zap.Int("not_found", run.counts[photometry.StatusNotFound]),
		zap.Int("errors", run.counts[photometry.StatusError]),
	)

	return nil
}

func readStars(path string) ([]starcsv.Star, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open input file %s", path)
	}
	defer file.Close()

	stars, err := starcsv.ReadStars(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read input file %s", path)
	}

	return stars, nil
}

func logMeasure(logger *zap.Logger, msr *pipeline.Measure) {
	if msr == nil {
		return
	}
	for name, mt := range msr.AllMetrics() {
		if mt.Count() == 0 {
			continue
		}
		logger.Info("step timing",
			zap.String("step", name),
			zap.Int64("count", mt.Count()),
			zap.Duration("avg", mt.AVGDuration()),
		)
	}
}
