package route

import (
	"errors"

	"go.uber.org/zap"

	"github.com/muurk/tetherpanel/internal/logging"
)

// Switcher moves the default route between uplinks.
type Switcher struct {
	store Store
}

// NewSwitcher creates a switcher over the given store.
func NewSwitcher(store Store) *Switcher {
	return &Switcher{store: store}
}

// Current returns the current default route, or nil if there is none.
func (s *Switcher) Current() (*Route, error) {
	r, err := s.store.DefaultRoute()
	if err != nil {
		return nil, wrapQuery("get default route", err)
	}
	return r, nil
}

// SwitchTo rebinds the default route's egress interface to the named link.
// Lookups happen on every call; nothing is cached between requests. The
// outcome is only meaningful when err is nil.
func (s *Switcher) SwitchTo(name string) (Outcome, error) {
	current, err := s.Current()
	if err != nil {
		return NoDefaultRoute, err
	}
	if current == nil {
		logging.Debug("No default route to switch", zap.String("interface", name))
		return NoDefaultRoute, nil
	}

	link, err := s.store.LinkByName(name)
	if err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			return UnknownInterface, nil
		}
		return UnknownInterface, wrapQuery("lookup link", err)
	}

	if link.Index == current.LinkIndex {
		return AlreadySelected, nil
	}

	if err := s.store.SetDefaultEgress(*current, link.Index); err != nil {
		return Switched, &CommitError{
			Interface: name,
			LinkIndex: link.Index,
			Err:       err,
		}
	}

	logging.Debug("Default route moved",
		zap.String("from", current.LinkName),
		zap.String("to", name),
		zap.Int("link_index", link.Index),
	)
	return Switched, nil
}

func wrapQuery(op string, err error) error {
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	return &QueryError{Op: op, Err: err}
}
