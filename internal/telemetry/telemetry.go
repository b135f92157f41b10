// Package telemetry reports command failures to Sentry when a DSN is
// configured. Without one every method is a no-op.
package telemetry

import (
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// EnvDSN is the environment variable holding the Sentry DSN.
const EnvDSN = "DISTFIX_SENTRY_DSN"

const flushTimeout = 2 * time.Second

// Options configures a Reporter.
type Options struct {
	DSN         string
	Release     string
	Environment string

	// BeforeSend, if set, may modify or drop events.
	BeforeSend func(*sentry.Event, *sentry.EventHint) *sentry.Event
}

// Reporter sends errors to Sentry through its own hub.
type Reporter struct {
	hub *sentry.Hub
}

// New returns a Reporter. An empty DSN yields a disabled Reporter.
func New(opts Options) (*Reporter, error) {
	if opts.DSN == "" {
		return &Reporter{}, nil
	}
	env := opts.Environment
	if env == "" {
		env = "production"
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Release:          opts.Release,
		Environment:      env,
		AttachStacktrace: false,
		ServerName:       "", // avoid leaking the build host name
		BeforeSend:       opts.BeforeSend,
	})
	if err != nil {
		return nil, err
	}
	return &Reporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// FromEnv builds a Reporter from DISTFIX_SENTRY_DSN.
func FromEnv(release string) (*Reporter, error) {
	return New(Options{DSN: os.Getenv(EnvDSN), Release: release})
}

// Enabled reports whether events are sent anywhere.
func (r *Reporter) Enabled() bool { return r != nil && r.hub != nil }

// CaptureCommandError records err tagged with the failing command.
func (r *Reporter) CaptureCommandError(command string, err error) {
	if !r.Enabled() || err == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("command", command)
		r.hub.CaptureException(err)
	})
}

// Flush waits for queued events to be delivered.
func (r *Reporter) Flush() {
	if !r.Enabled() {
		return
	}
	r.hub.Flush(flushTimeout)
}
