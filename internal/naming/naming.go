// Package naming generates the globally-unique resource names a deployment
// needs. Names are a deterministic function of the configured prefix and the
// clock, with an optional collision-resistant suffix for operators who may
// run more than one deployment per second.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/savaki/deltashare-deployer/internal/errors"
	"github.com/segmentio/ksuid"
)

// Storage account names must be 3-24 chars, lowercase letters and digits only.
var storageNameRE = regexp.MustCompile(`^[a-z0-9]{3,24}$`)

// Names holds the generated resource names for one deployment run.
type Names struct {
	StorageAccount string
	FunctionApp    string
}

// Generator derives resource names from a prefix and a clock.
type Generator struct {
	prefix string
	suffix bool
	now    func() time.Time
	newID  func() ksuid.KSUID
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source. Used by tests and by anyone who wants
// reproducible names.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithSuffix toggles the collision-resistant suffix appended after the
// timestamp. Enabled by default.
func WithSuffix(enabled bool) Option {
	return func(g *Generator) { g.suffix = enabled }
}

// WithIDSource overrides the ksuid source used for suffixes.
func WithIDSource(newID func() ksuid.KSUID) Option {
	return func(g *Generator) { g.newID = newID }
}

// NewGenerator creates a Generator for the given prefix.
func NewGenerator(prefix string, opts ...Option) *Generator {
	g := &Generator{
		prefix: strings.ToLower(prefix),
		suffix: true,
		now:    time.Now,
		newID:  ksuid.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces the storage account and function app names for one run.
// Without a suffix the result is prefix+unixseconds, matching the historical
// naming scheme. With a suffix a 4 character tail derived from a fresh ksuid
// is appended so two runs in the same second cannot collide. Four characters
// keep the default prefix plus a 10 digit timestamp inside the 24 character
// storage account limit.
func (g *Generator) Generate() (Names, error) {
	ts := g.now().Unix()
	tail := ""
	if g.suffix {
		id := strings.ToLower(g.newID().String())
		tail = id[len(id)-4:]
	}

	storage := fmt.Sprintf("%s%d%s", g.prefix, ts, tail)
	if !storageNameRE.MatchString(storage) {
		return Names{}, fmt.Errorf("%w: %q must be 3-24 lowercase alphanumeric characters", apperrors.ErrInvalidStorageName, storage)
	}

	return Names{
		StorageAccount: storage,
		FunctionApp:    fmt.Sprintf("%s-func-%d%s", g.prefix, ts, tail),
	}, nil
}

// BaseURL returns the public https endpoint for a function app name.
func BaseURL(functionApp string) string {
	return fmt.Sprintf("https://%s.azurewebsites.net", functionApp)
}
