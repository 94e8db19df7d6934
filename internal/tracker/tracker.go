/*
Package tracker runs one pass of the bulletin sync: fetch the listing, work
out which bulletins are new, archive and announce them, then persist the
listing for the next run.
*/
package tracker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/shanehull/bultentakip/internal/bulletin"
	"github.com/shanehull/bultentakip/internal/metrics"
	"github.com/shanehull/bultentakip/internal/notify"
	"github.com/shanehull/bultentakip/internal/storage"
	"github.com/shanehull/bultentakip/internal/types"
)

type Fetcher interface {
	FetchBulletins(ctx context.Context) (types.Snapshot, error)
}

type Downloader interface {
	Download(ctx context.Context, b types.Bulletin, dir string) (string, error)
}

// Uploader returns storage.ErrDisabled when uploads are not configured.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// Notifier returns notify.ErrDisabled when notifications are not configured.
type Notifier interface {
	Enabled() bool
	Notify(data notify.NotificationData) error
}

type Summarizer interface {
	Enabled() bool
	Summarize(ctx context.Context, title string, pdf []byte) ([]string, error)
}

type SnapshotStore interface {
	Load() (types.Snapshot, error)
	Save(current types.Snapshot) error
}

// Deps are the collaborators of a run. Summarizer and Metrics are optional.
type Deps struct {
	Fetcher    Fetcher
	Downloader Downloader
	Uploader   Uploader
	Notifier   Notifier
	Summarizer Summarizer
	Store      SnapshotStore
	Metrics    *metrics.Recorder
}

type Options struct {
	DownloadDir string
	Location    *time.Location
	// DryRun stops after the delta: nothing is downloaded, uploaded, sent or saved.
	DryRun bool
}

// Result summarises a completed run.
type Result struct {
	Current  types.Snapshot
	Previous types.Snapshot
	New      types.Snapshot
	Outcomes []types.Outcome

	// ExpectationChecked is false outside the early-month window.
	ExpectationChecked bool
	ExpectedFound      bool

	Saved bool
}

type Tracker struct {
	deps Deps
	opts Options
	log  zerolog.Logger
	now  func() time.Time
}

func New(deps Deps, opts Options, log zerolog.Logger) *Tracker {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRecorder()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Tracker{
		deps: deps,
		opts: opts,
		log:  log.With().Str("component", "tracker").Logger(),
		now:  time.Now,
	}
}

// SetClock replaces the source of "today".
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// Run performs one pass. It returns an error only when the fetch failed or ctx
// was cancelled between bulletins; in both cases the snapshot is left untouched.
func (t *Tracker) Run(ctx context.Context) (*Result, error) {
	started := t.now()
	defer func() {
		t.deps.Metrics.Duration(t.now().Sub(started))
	}()

	t.log.Info().Msg("starting ING bulletin tracker")

	previous := t.loadPrevious()

	current, err := t.deps.Fetcher.FetchBulletins(ctx)
	if err != nil {
		t.deps.Metrics.Failed(metrics.StageFetch)
		t.log.Error().Err(err).Msg("could not fetch bulletins, aborting run")
		return nil, fmt.Errorf("fetch bulletins: %w", err)
	}
	t.deps.Metrics.Seen(len(current))
	t.log.Info().Int("count", len(current)).Msg("bulletins found on listing page")

	res := &Result{Current: current, Previous: previous}

	t.checkExpectation(res)

	res.New = bulletin.FindNew(current, previous)
	t.deps.Metrics.New(len(res.New))
	if len(previous) == 0 {
		t.log.Info().Msg("no history, treating every bulletin as new")
	}
	t.log.Info().Int("count", len(res.New)).Msg("new bulletins")

	if t.opts.DryRun {
		t.log.Info().Msg("dry run, skipping processing and snapshot save")
		return res, nil
	}

	for _, b := range res.New {
		if err := ctx.Err(); err != nil {
			t.log.Warn().Err(err).Msg("run cancelled before all bulletins were processed, snapshot not saved")
			return res, fmt.Errorf("run cancelled: %w", err)
		}
		res.Outcomes = append(res.Outcomes, t.process(ctx, b))
	}

	// A signal during the last bulletin fails it without reaching the loop check.
	if err := ctx.Err(); err != nil {
		t.log.Warn().Err(err).Msg("run cancelled while processing, snapshot not saved")
		return res, fmt.Errorf("run cancelled: %w", err)
	}

	if err := t.deps.Store.Save(current); err != nil {
		t.deps.Metrics.Failed(metrics.StageSave)
		t.log.Error().Err(err).Msg("failed to save snapshot, next run may reprocess bulletins")
	} else {
		res.Saved = true
	}

	t.deps.Metrics.Succeeded(t.now())
	t.log.Info().Msg("run complete")
	return res, nil
}

func (t *Tracker) loadPrevious() types.Snapshot {
	previous, err := t.deps.Store.Load()
	if err != nil {
		t.log.Error().Err(err).Msg("failed to load snapshot, starting with empty history")
		return nil
	}
	return previous
}

func (t *Tracker) checkExpectation(res *Result) {
	today := t.now().In(t.opts.Location)

	if !bulletin.InExpectationWindow(today) {
		t.log.Info().
			Int("day", today.Day()).
			Msgf("past day %d of the month, not checking for this month's bulletin", bulletin.ExpectationWindowDays)
		return
	}

	res.ExpectationChecked = true
	res.ExpectedFound = bulletin.ExpectedPublished(today, res.Current)
	t.deps.Metrics.ExpectedFound(res.ExpectedFound)

	expected := bulletin.ExpectedTitle(today)
	if res.ExpectedFound {
		t.log.Info().Str("expected", expected).Msg("expected bulletin found")
		return
	}
	t.log.Warn().Str("expected", expected).Msg("expected bulletin not published yet")
}

// process takes one bulletin as far through download, upload and notify as it
// can. A failed step stops this bulletin only.
func (t *Tracker) process(ctx context.Context, b types.Bulletin) types.Outcome {
	log := t.log.With().Str("title", b.Title).Str("url", b.URL).Logger()
	log.Info().Msg("processing bulletin")

	out := types.Outcome{Bulletin: b}

	localPath, err := t.deps.Downloader.Download(ctx, b, t.opts.DownloadDir)
	if err != nil {
		t.deps.Metrics.Failed(metrics.StageDownload)
		log.Error().Err(err).Msg("failed to download bulletin, skipping")
		out.Err = err
		return out
	}
	out.Downloaded = true
	out.FileName = filepath.Base(localPath)
	t.deps.Metrics.Downloaded()
	log.Info().Str("file", out.FileName).Msg("bulletin downloaded")

	remotePath, err := t.deps.Uploader.Upload(ctx, localPath)
	switch {
	case errors.Is(err, storage.ErrDisabled):
		log.Warn().Msg("dropbox token not configured, upload skipped")
		return out
	case err != nil:
		t.deps.Metrics.Failed(metrics.StageUpload)
		log.Error().Err(err).Msg("failed to upload bulletin")
		out.Err = err
		return out
	}
	out.Uploaded = true
	out.RemotePath = remotePath
	t.deps.Metrics.Uploaded()
	log.Info().Str("remote", remotePath).Msg("bulletin uploaded to dropbox")

	if !t.deps.Notifier.Enabled() {
		log.Warn().Msg("email settings incomplete, notification skipped")
		return out
	}

	data := notify.NotificationData{
		Bulletin:   b,
		FileName:   out.FileName,
		RemotePath: remotePath,
		Summary:    t.summarize(ctx, log, b, localPath),
	}

	if err := t.deps.Notifier.Notify(data); err != nil {
		t.deps.Metrics.Failed(metrics.StageNotify)
		log.Error().Err(err).Msg("failed to send notification email")
		return out
	}
	out.Notified = true
	t.deps.Metrics.Notified()
	log.Info().Msg("notification email sent")

	return out
}

func (t *Tracker) summarize(ctx context.Context, log zerolog.Logger, b types.Bulletin, localPath string) []string {
	if t.deps.Summarizer == nil || !t.deps.Summarizer.Enabled() {
		return nil
	}

	pdf, err := os.ReadFile(localPath)
	if err != nil {
		log.Warn().Err(err).Msg("could not read bulletin for summary")
		return nil
	}

	summary, err := t.deps.Summarizer.Summarize(ctx, b.Title, pdf)
	if err != nil {
		log.Warn().Err(err).Msg("AI summary failed, sending notification without it")
		return nil
	}
	return summary
}
