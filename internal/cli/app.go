package cli

import (
	"context"
	"errors"
	"os"

	"github.com/viant/sfreport"
	"github.com/viant/sfreport/model"
)

const (
	envPassword      = "SF_PASSWORD"
	envSecurityToken = "SF_SECURITY_TOKEN"

	serviceName = "sfreport"
)

// Version is the CLI version reported by `sfreport version` and trace resources.
var Version = "dev"

// app holds the global flags shared by every command.
type app struct {
	configURL      string
	domain         string
	username       string
	password       string
	securityToken  string
	credentialsURL string
	key            string
	historyDSN     string
	traceFile      string
	options        []sfreport.Option
}

// config loads the config file, when given, and applies flag overrides.
func (a *app) config(ctx context.Context) (*sfreport.Config, error) {
	config := sfreport.DefaultConfig()
	if a.configURL != "" {
		var err error
		if config, err = sfreport.LoadConfig(ctx, a.configURL); err != nil {
			return nil, err
		}
	}
	if a.domain != "" {
		config.Login.Domain = a.domain
	}
	if a.username != "" {
		config.Login.Username = a.username
	}
	if a.credentialsURL != "" {
		config.Login.CredentialsURL = a.credentialsURL
	}
	if a.key != "" {
		config.Login.Key = a.key
	}
	if a.historyDSN != "" {
		config.History.DSN = a.historyDSN
	}
	if a.traceFile != "" {
		config.Tracing.Enabled = true
		config.Tracing.OutputFile = a.traceFile
	}
	return config, nil
}

func (a *app) service(ctx context.Context, extra ...sfreport.Option) (*sfreport.Service, error) {
	config, err := a.config(ctx)
	if err != nil {
		return nil, err
	}
	options := []sfreport.Option{sfreport.WithConfig(config)}
	if config.Tracing.Enabled {
		options = append(options, sfreport.WithTracing(serviceName, Version, config.Tracing.OutputFile))
	}
	options = append(options, a.options...)
	options = append(options, extra...)
	return sfreport.New(options...)
}

// login authenticates with stored credentials when configured, else with flags and env.
func (a *app) login(ctx context.Context, srv *sfreport.Service) (*model.Session, error) {
	config := srv.Config()
	if config.Login.CredentialsURL != "" {
		return srv.LoginWithCredentials(ctx, config.Login.CredentialsURL, config.Login.Key)
	}
	password := a.password
	if password == "" {
		password = os.Getenv(envPassword)
	}
	token := a.securityToken
	if token == "" {
		token = os.Getenv(envSecurityToken)
	}
	if config.Login.Username == "" || password == "" {
		return nil, errors.New("provide `--username` and `--password` (or SF_PASSWORD), or `--credentials <url>`")
	}
	return srv.Login(ctx, config.Login.Username, password, token, config.Login.Domain)
}
