package client

import "time"

// Policy defines retry behaviour.
type Policy struct {
	MaxRetries     int           `json:"maxRetries" yaml:"maxRetries"`
	InitialBackoff time.Duration `json:"initialBackoff" yaml:"initialBackoff"`
	MaxBackoff     time.Duration `json:"maxBackoff" yaml:"maxBackoff"`
	RetryStatuses  []int         `json:"retryStatuses,omitempty" yaml:"retryStatuses,omitempty"`
}

// DefaultPolicy returns three attempts starting at one second, doubling up to a minute,
// retrying 429 and the 5xx gateway family.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:     3,
		InitialBackoff: time.Second,
		MaxBackoff:     60 * time.Second,
		RetryStatuses:  []int{429, 500, 502, 503, 504},
	}
}

func (p Policy) retryable(status int) bool {
	for _, candidate := range p.RetryStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

func (p Policy) next(backoff time.Duration) time.Duration {
	backoff *= 2
	if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
		backoff = p.MaxBackoff
	}
	return backoff
}
