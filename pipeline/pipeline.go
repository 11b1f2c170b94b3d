package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/viant/afs"
	"github.com/viant/sfreport/catalog"
	"github.com/viant/sfreport/export"
	"github.com/viant/sfreport/internal/clock"
	"github.com/viant/sfreport/internal/idgen"
	"github.com/viant/sfreport/model"
	"github.com/viant/sfreport/progress"
	"github.com/viant/sfreport/tracing"
)

// DefaultDelay separates consecutive report downloads.
const DefaultDelay = 500 * time.Millisecond

// Lister resolves the reports in scope of a run.
type Lister interface {
	ListReports(ctx context.Context) ([]*model.ReportMetadata, error)
	ListFolderReports(ctx context.Context, folderID string) ([]*model.ReportMetadata, error)
}

// Recorder persists finished runs.
type Recorder interface {
	Record(ctx context.Context, result *model.ExportResult) error
}

// Runner executes export runs for one session. Runs are strictly sequential.
type Runner struct {
	session    *model.Session
	lister     Lister
	exporter   export.Exporter
	fs         afs.Service
	tempDir    string
	delay      time.Duration
	sleep      clock.Sleeper
	onProgress progress.Callback
	recorder   Recorder
}

// ExportAll exports every report of the org into destURL.
func (r *Runner) ExportAll(ctx context.Context, destURL string) (*model.ExportResult, error) {
	reports, err := r.lister.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, destURL, reports, "", emptyOrgText)
}

// ExportFolder exports the reports stored in folderID.
func (r *Runner) ExportFolder(ctx context.Context, destURL, folderID string) (*model.ExportResult, error) {
	reports, err := r.lister.ListFolderReports(ctx, folderID)
	if err != nil {
		return nil, err
	}
	reports = catalog.InFolder(reports, folderID)
	folderName := folderID
	if len(reports) > 0 && reports[0].FolderName != "" {
		folderName = reports[0].FolderName
	}
	return r.run(ctx, destURL, reports, folderName, emptyFolderText(folderName))
}

// ExportSelected exports the catalog reports whose ids are listed, in catalog order.
// Ids missing from the catalog are logged and skipped.
func (r *Runner) ExportSelected(ctx context.Context, destURL string, reportIDs []string) (*model.ExportResult, error) {
	reports, err := r.lister.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	reportIDs = uniqueIDs(reportIDs)
	selected := catalog.Select(reports, reportIDs)
	if len(selected) != len(reportIDs) {
		log.Printf("%d of %d selected reports were not found in the catalog", len(reportIDs)-len(selected), len(reportIDs))
	}
	return r.run(ctx, destURL, selected, "", emptySelectionText)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	ret := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		ret = append(ret, id)
	}
	return ret
}

// run exports reports into destURL; an empty run archives readme as the only entry.
func (r *Runner) run(ctx context.Context, destURL string, reports []*model.ReportMetadata, folderName, readme string) (result *model.ExportResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline.run", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	result = &model.ExportResult{
		RunID:      idgen.NewRunID(),
		ZipPath:    destURL,
		Total:      len(reports),
		Successful: []string{},
		Failed:     []model.Failure{},
		APIVersion: r.session.VersionPath(),
		FolderName: folderName,
		Instance:   r.session.BaseURL(),
		StartedAt:  clock.Now(),
	}
	span.WithAttributes(map[string]string{"sf.run": result.RunID, "sf.total": fmt.Sprint(result.Total)})

	dir, err := newWorkdir(ctx, r.fs, r.tempDir)
	if err != nil {
		return nil, err
	}
	defer dir.remove(ctx)

	if len(reports) == 0 {
		if err = dir.write(ctx, ReadmeFile, readme); err != nil {
			return nil, err
		}
		if err = dir.archive(ctx, destURL, clock.Now()); err != nil {
			return nil, err
		}
		return r.finish(ctx, result), nil
	}

	tracker := progress.New(result.RunID, len(reports), r.onProgress)
	namer := NewNamer()
	for i, report := range reports {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		filename := namer.Assign(report.DisplayName())
		content, exportErr := r.exporter.ExportCSV(ctx, report.ID)
		delta := progress.Delta{Completed: 1}
		if exportErr != nil {
			failure := model.Failure{ID: report.ID, Name: report.DisplayName(), Type: report.Format(), Error: exportErr.Error()}
			result.Failed = append(result.Failed, failure)
			content = errorStub(&failure)
			delta.Failed = 1
		} else {
			result.Successful = append(result.Successful, report.DisplayName())
		}
		if err = dir.write(ctx, filename, content); err != nil {
			return nil, err
		}
		tracker.Update(delta)
		if r.delay > 0 && i < len(reports)-1 {
			if err = r.sleep(ctx, r.delay); err != nil {
				return nil, err
			}
		}
	}

	snapshot := tracker.Snapshot()
	span.WithAttributes(map[string]string{"sf.completed": fmt.Sprint(snapshot.Completed), "sf.failed": fmt.Sprint(snapshot.Failed)})

	now := clock.Now()
	summary := entry{name: SummaryFile, content: []byte(Summary(result, now))}
	if err = dir.archive(ctx, destURL, now, summary); err != nil {
		return nil, err
	}
	return r.finish(ctx, result), nil
}

func (r *Runner) finish(ctx context.Context, result *model.ExportResult) *model.ExportResult {
	result.EndedAt = clock.Now()
	if r.recorder != nil {
		if err := r.recorder.Record(ctx, result); err != nil {
			log.Printf("failed to record export run %s: %v", result.RunID, err)
		}
	}
	return result
}

// New creates a Runner.
func New(session *model.Session, lister Lister, exporter export.Exporter, options ...Option) *Runner {
	ret := &Runner{
		session:  session,
		lister:   lister,
		exporter: exporter,
		delay:    DefaultDelay,
		tempDir:  os.TempDir(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.sleep == nil {
		ret.sleep = clock.Sleep
	}
	return ret
}
