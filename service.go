package sfreport

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/sfreport/auth"
	"github.com/viant/sfreport/catalog"
	"github.com/viant/sfreport/client"
	"github.com/viant/sfreport/credentials"
	"github.com/viant/sfreport/export"
	"github.com/viant/sfreport/history"
	"github.com/viant/sfreport/internal/clock"
	"github.com/viant/sfreport/model"
	"github.com/viant/sfreport/pipeline"
	"github.com/viant/sfreport/progress"
)

// Service wires the authenticator, catalog, export engine and pipeline for one user.
type Service struct {
	config      *Config
	httpClient  *http.Client
	sleep       clock.Sleeper
	onProgress  progress.Callback
	fs          afs.Service
	recorder    pipeline.Recorder
	client      *client.Client
	auth        *auth.Authenticator
	credentials *credentials.Service

	mux     sync.RWMutex
	session *model.Session
	history *history.Store
}

// Config returns the configuration in effect.
func (s *Service) Config() *Config {
	return s.config
}

// Login authenticates and keeps the session for subsequent calls.
func (s *Service) Login(ctx context.Context, username, password, securityToken, domain string) (*model.Session, error) {
	if domain == "" {
		domain = s.config.Login.Domain
	}
	session, err := s.auth.Login(ctx, username, password, securityToken, domain)
	if err != nil {
		return nil, err
	}
	s.mux.Lock()
	s.session = session
	s.mux.Unlock()
	return session, nil
}

// LoginWithCredentials loads scy encrypted credentials from URL and logs in with them.
func (s *Service) LoginWithCredentials(ctx context.Context, URL, key string) (*model.Session, error) {
	creds, err := s.credentials.Load(ctx, URL, key)
	if err != nil {
		return nil, err
	}
	return s.Login(ctx, creds.Username, creds.Password, creds.SecurityToken, creds.Domain)
}

// Credentials returns the credentials store.
func (s *Service) Credentials() *credentials.Service {
	return s.credentials
}

// Session returns the current session or ErrNotLoggedIn.
func (s *Service) Session() (*model.Session, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	if s.session == nil {
		return nil, ErrNotLoggedIn
	}
	return s.session, nil
}

// Catalog returns a report catalog bound to the current session.
func (s *Service) Catalog() (*catalog.Catalog, error) {
	session, err := s.Session()
	if err != nil {
		return nil, err
	}
	return catalog.New(session, catalog.WithClient(s.client), catalog.WithTimeout(s.config.HTTP.ListTimeout)), nil
}

// Runner returns an export pipeline bound to the current session.
func (s *Service) Runner(ctx context.Context) (*pipeline.Runner, error) {
	session, err := s.Session()
	if err != nil {
		return nil, err
	}
	lister, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	recorder, err := s.runRecorder(ctx)
	if err != nil {
		return nil, err
	}
	engine := export.New(session, export.WithClient(s.client), export.WithTimeout(s.config.HTTP.ExportTimeout))
	options := []pipeline.Option{
		pipeline.WithDelay(s.config.Export.Delay),
		pipeline.WithSleeper(s.sleep),
		pipeline.WithProgress(s.onProgress),
		pipeline.WithFS(s.fs),
	}
	if recorder != nil {
		options = append(options, pipeline.WithRecorder(recorder))
	}
	if s.config.Export.TempDir != "" {
		options = append(options, pipeline.WithTempDir(s.config.Export.TempDir))
	}
	return pipeline.New(session, lister, engine, options...), nil
}

// ListReports lists every report in the org.
func (s *Service) ListReports(ctx context.Context) ([]*model.ReportMetadata, error) {
	aCatalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return aCatalog.ListReports(ctx)
}

// ListReportFolders lists the report folders in the org.
func (s *Service) ListReportFolders(ctx context.Context) ([]*model.FolderMetadata, error) {
	aCatalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return aCatalog.ListReportFolders(ctx)
}

// ExportAll exports every report into destURL.
func (s *Service) ExportAll(ctx context.Context, destURL string) (*model.ExportResult, error) {
	runner, err := s.Runner(ctx)
	if err != nil {
		return nil, err
	}
	return runner.ExportAll(ctx, destURL)
}

// ExportFolder exports the reports of one folder into destURL.
func (s *Service) ExportFolder(ctx context.Context, destURL, folderID string) (*model.ExportResult, error) {
	runner, err := s.Runner(ctx)
	if err != nil {
		return nil, err
	}
	return runner.ExportFolder(ctx, destURL, folderID)
}

// ExportSelected exports the listed reports into destURL.
func (s *Service) ExportSelected(ctx context.Context, destURL string, reportIDs []string) (*model.ExportResult, error) {
	runner, err := s.Runner(ctx)
	if err != nil {
		return nil, err
	}
	return runner.ExportSelected(ctx, destURL, reportIDs)
}

// History returns the run ledger configured with history.dsn, or nil when none is configured.
func (s *Service) History(ctx context.Context) (*history.Store, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.history != nil || s.config.History.DSN == "" {
		return s.history, nil
	}
	store, err := history.Open(ctx, s.config.History.DSN)
	if err != nil {
		return nil, err
	}
	s.history = store
	return store, nil
}

func (s *Service) runRecorder(ctx context.Context) (pipeline.Recorder, error) {
	if s.recorder != nil {
		return s.recorder, nil
	}
	store, err := s.History(ctx)
	if err != nil || store == nil {
		return nil, err
	}
	return store, nil
}

// Close releases the history database, if open.
func (s *Service) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.history == nil {
		return nil
	}
	err := s.history.Close()
	s.history = nil
	return err
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.sleep == nil {
		s.sleep = clock.Sleep
	}
	if s.httpClient == nil {
		s.httpClient = http.DefaultClient
	}
	policy := client.DefaultPolicy()
	policy.MaxRetries = s.config.HTTP.MaxRetries
	policy.InitialBackoff = s.config.HTTP.InitialBackoff
	policy.MaxBackoff = s.config.HTTP.MaxBackoff
	s.client = client.New(client.WithHTTPClient(s.httpClient), client.WithPolicy(policy), client.WithSleeper(s.sleep))
	s.auth = auth.New(auth.WithClient(s.client),
		auth.WithLoginTimeout(s.config.HTTP.LoginTimeout),
		auth.WithFallbackVersion(s.config.Export.FallbackVersion))
	s.credentials = credentials.New()
}

// New creates a Service; an invalid configuration surfaces as an error.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	ret.init(options)
	if err := ret.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return ret, nil
}
