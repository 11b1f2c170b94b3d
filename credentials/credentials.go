// Package credentials stores and loads Salesforce login credentials as scy
// encrypted secrets, so the CLI never needs a password on the command line.
package credentials

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	_ "github.com/viant/scy/kms/blowfish"
)

// DefaultKey encrypts secrets when no key is configured.
const DefaultKey = "blowfish://default"

// Credentials holds a Salesforce username, password and optional security token.
type Credentials struct {
	cred.Basic
	SecurityToken string `json:",omitempty"`
	Domain        string `json:",omitempty"`
}

// Service loads and stores credentials.
type Service struct {
	scy *scy.Service
}

// Load decrypts the credentials stored at URL.
func (s *Service) Load(ctx context.Context, URL, key string) (*Credentials, error) {
	resource := scy.NewResource(reflect.TypeOf(Credentials{}), URL, keyOrDefault(key))
	secret, err := s.scy.Load(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials from %s: %w", URL, err)
	}
	var ret *Credentials
	switch actual := secret.Target.(type) {
	case *Credentials:
		ret = actual
	case Credentials:
		ret = &actual
	default:
		return nil, fmt.Errorf("unexpected credentials type at %s: %T", URL, secret.Target)
	}
	if ret.Username == "" {
		return nil, fmt.Errorf("credentials at %s have no username", URL)
	}
	return ret, nil
}

// Store encrypts credentials into URL.
func (s *Service) Store(ctx context.Context, URL, key string, credentials *Credentials) error {
	resource := scy.NewResource(reflect.TypeOf(Credentials{}), URL, keyOrDefault(key))
	if err := s.scy.Store(ctx, scy.NewSecret(credentials, resource)); err != nil {
		return fmt.Errorf("failed to store credentials at %s: %w", URL, err)
	}
	return nil
}

func keyOrDefault(key string) string {
	if key == "" {
		return DefaultKey
	}
	return key
}

// New creates a credentials service.
func New() *Service {
	return &Service{scy: scy.New()}
}
