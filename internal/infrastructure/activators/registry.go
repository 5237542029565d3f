package activators

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/domain/interfaces"
	"netstate-agent/internal/infrastructure/renderers"
)

// DefaultPriority is the fixed probe order used when the caller supplies none.
// It differs from the renderer order: NetworkManager can activate sysconfig
// output but has no renderer of its own.
var DefaultPriority = []string{"eni", "NetworkManager", "netplan", "networkd", "etcnet"}

// Selection is one usable backend returned by Search/Select
type Selection struct {
	Name      string
	Activator interfaces.NetworkActivator
}

// entry couples a backend's availability probe with its activator constructor
type entry struct {
	available func(target string) bool
	build     func() interfaces.NetworkActivator
}

// Registry is the static table of activator backends, mirroring the renderer
// registry. Probes are shared with the renderer package so a renderer and its
// matching activator agree on what "available" means.
type Registry struct {
	fileSystem interfaces.FileSystem
	locator    interfaces.CommandLocator
	executor   interfaces.CommandExecutor
	timeout    time.Duration
	logger     *logrus.Logger
	backends   map[string]entry
}

// NewRegistry creates a Registry over the five known activator backends.
// A non-positive timeout falls back to the built-in command timeout.
func NewRegistry(fs interfaces.FileSystem, locator interfaces.CommandLocator, executor interfaces.CommandExecutor, timeout time.Duration, logger *logrus.Logger) *Registry {
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	r := &Registry{
		fileSystem: fs,
		locator:    locator,
		executor:   executor,
		timeout:    timeout,
		logger:     logger,
	}
	r.backends = map[string]entry{
		"eni": {
			available: func(target string) bool { return renderers.ENIAvailable(fs, locator, target) },
			build: func() interfaces.NetworkActivator {
				a := NewIfUpDownActivator(executor, logger)
				a.timeout = r.timeout
				return a
			},
		},
		"NetworkManager": {
			available: func(target string) bool { return renderers.NetworkManagerAvailable(fs, locator, target) },
			build: func() interfaces.NetworkActivator {
				a := NewNetworkManagerActivator(executor, logger)
				a.timeout = r.timeout
				return a
			},
		},
		"netplan": {
			available: func(target string) bool { return renderers.NetplanAvailable(fs, locator, target) },
			build: func() interfaces.NetworkActivator {
				a := NewNetplanActivator(executor, logger)
				a.timeout = r.timeout
				return a
			},
		},
		"networkd": {
			available: func(target string) bool { return renderers.NetworkdAvailable(fs, locator, target) },
			build: func() interfaces.NetworkActivator {
				a := NewNetworkdActivator(executor, logger)
				a.timeout = r.timeout
				return a
			},
		},
		"etcnet": {
			available: func(target string) bool { return renderers.EtcnetAvailable(fs, locator, target) },
			build: func() interfaces.NetworkActivator {
				a := NewEtcnetActivator(executor, logger)
				a.timeout = r.timeout
				return a
			},
		},
	}
	return r
}

// Search probes every backend in priority order and returns the usable subset
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
			fmt.Sprintf("unknown activators provided in priority list: %v", unknown), nil)
	}

	var found []Selection
	for _, name := range priority {
		backend := r.backends[name]
		if backend.available(target) {
			found = append(found, Selection{Name: name, Activator: backend.build()})
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
			fmt.Sprintf("no available network activators found%s; searched through list: %v", tmsg, priority))
	}

	r.logger.WithField("activator", found[0].Name).Debug("Using selected activator")
	return found[0], nil
}
