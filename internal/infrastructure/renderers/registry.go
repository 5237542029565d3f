package renderers

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/domain/interfaces"
)

// DefaultPriority is the fixed probe order used when the caller supplies none
var DefaultPriority = []string{"eni", "sysconfig", "netplan", "etcnet", "networkd"}

// Selection is one usable backend returned by Search/Select
type Selection struct {
	Name     string
	Renderer interfaces.Renderer
}

// entry couples a backend's availability probe with its renderer constructor
type entry struct {
	available func(target string) bool
	build     func() interfaces.Renderer
}

// Registry is the static table of renderer backends.
// It is populated once at construction and never mutated afterwards, so
// repeated Search/Select calls against the same filesystem state return
// the same result.
type Registry struct {
	fileSystem interfaces.FileSystem
	locator    interfaces.CommandLocator
	logger     *logrus.Logger
	backends   map[string]entry
}

// NewRegistry creates a Registry over the five known renderer backends
func NewRegistry(fs interfaces.FileSystem, locator interfaces.CommandLocator, logger *logrus.Logger) *Registry {
	r := &Registry{
		fileSystem: fs,
		locator:    locator,
		logger:     logger,
	}
	r.backends = map[string]entry{
		"eni": {
			available: func(target string) bool { return ENIAvailable(fs, locator, target) },
			build:     func() interfaces.Renderer { return NewENIRenderer(fs, logger) },
		},
		"sysconfig": {
			available: func(target string) bool { return SysconfigAvailable(fs, locator, target) },
			build:     func() interfaces.Renderer { return NewSysconfigRenderer(fs, logger) },
		},
		"netplan": {
			available: func(target string) bool { return NetplanAvailable(fs, locator, target) },
			build:     func() interfaces.Renderer { return NewNetplanRenderer(fs, logger) },
		},
		"etcnet": {
			available: func(target string) bool { return EtcnetAvailable(fs, locator, target) },
			build:     func() interfaces.Renderer { return NewEtcnetRenderer(fs, logger) },
		},
		"networkd": {
			available: func(target string) bool { return NetworkdAvailable(fs, locator, target) },
			build:     func() interfaces.Renderer { return NewNetworkdRenderer(fs, logger) },
		},
	}
	return r
}

// Search probes every backend in priority order and returns the usable subset.
// Unknown names in the priority list are a configuration error naming exactly
// the offending entries.
func (r *Registry) Search(priority []string, target string) ([]Selection, error) {
	if priority == nil {
		priority = DefaultPriority
	}

	var unknown []string
	for _, name := range priority {
		if _, ok := r.backends[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("unknown renderers provided in priority list: %v", unknown), nil)
	}

	var found []Selection
	for _, name := range priority {
		backend := r.backends[name]
		if backend.available(target) {
			found = append(found, Selection{Name: name, Renderer: backend.build()})
		}
	}
	return found, nil
}

// Select returns the first usable backend in priority order
func (r *Registry) Select(priority []string, target string) (Selection, error) {
	found, err := r.Search(priority, target)
	if err != nil {
		return Selection{}, err
	}
	if len(found) == 0 {
		if priority == nil {
			priority = DefaultPriority
		}
		tmsg := ""
		if target != "" && target != "/" {
			tmsg = fmt.Sprintf(" in target=%s", target)
		}
		return Selection{}, errors.NewNotFoundError(
			fmt.Sprintf("no available network renderers found%s; searched through list: %v", tmsg, priority))
	}

	r.logger.WithField("renderer", found[0].Name).Debug("Using selected renderer")
	return found[0], nil
}
