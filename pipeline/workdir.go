package pipeline

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/sfreport/internal/idgen"
)

// WorkdirPrefix prefixes every working directory name.
const WorkdirPrefix = "sf_reports_"

// workdir is the scratch directory of one run.
type workdir struct {
	fs  afs.Service
	URL string
}

func newWorkdir(ctx context.Context, fs afs.Service, parent string) (*workdir, error) {
	URL := url.Join(parent, WorkdirPrefix+idgen.NewRunID())
	if err := fs.Create(ctx, URL, file.DefaultDirOsMode, true); err != nil {
		return nil, fmt.Errorf("failed to create working directory %s: %w", URL, err)
	}
	return &workdir{fs: fs, URL: URL}, nil
}

func (w *workdir) write(ctx context.Context, name, content string) error {
	URL := url.Join(w.URL, name)
	if err := w.fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", URL, err)
	}
	return nil
}

// files returns the names of regular files, sorted lexicographically.
func (w *workdir) files(ctx context.Context) ([]string, error) {
	objects, err := w.fs.List(ctx, w.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", w.URL, err)
	}
	var names []string
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		names = append(names, object.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (w *workdir) read(ctx context.Context, name string) ([]byte, error) {
	return w.fs.DownloadWithURL(ctx, url.Join(w.URL, name))
}

// remove deletes the directory; failures are logged and discarded.
func (w *workdir) remove(ctx context.Context) {
	if err := w.fs.Delete(context.WithoutCancel(ctx), w.URL); err != nil {
		log.Printf("failed to remove working directory %s: %v", w.URL, err)
	}
}
