package navigation

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"ptjobs/internal/domain"
)

// Navigator is the active node plus a LIFO back-stack.
type Navigator struct {
	topo *Topology
	log  zerolog.Logger

	mu    sync.Mutex
	role  domain.Role
	cur   domain.Node
	stack []domain.Node
}

// NewNavigator mounts role's root. A nil topo uses Default.
func NewNavigator(topo *Topology, role domain.Role, log zerolog.Logger) *Navigator {
	if topo == nil {
		topo = Default()
	}
	n := &Navigator{topo: topo, log: log}
	n.mount(role)
	return n
}

// Topology returns the graph the navigator walks.
func (n *Navigator) Topology() *Topology { return n.topo }

func (n *Navigator) mount(role domain.Role) {
	n.role = role
	n.cur = domain.Node{Destination: n.topo.Root(role)}
	n.stack = nil
}

// NavigateTo pushes the current node and opens dest. Missing required
// params are not an error; the screen renders placeholder content.
func (n *Navigator) NavigateTo(dest domain.Destination, params domain.Params) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.topo.check(n.role, dest); err != nil {
		return fmt.Errorf("%w: %s", err, dest)
	}
	if missing := n.topo.MissingParams(dest, params); len(missing) > 0 {
		n.log.Debug().Str("dest", dest.String()).Strs("missing", missing).Msg("opening without params")
	}
	n.stack = append(n.stack, n.cur)
	n.cur = domain.Node{Destination: dest, Params: params.Clone()}
	return nil
}

// GoBack pops the back-stack. It reports false at the root.
func (n *Navigator) GoBack() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.stack) == 0 {
		return false
	}
	last := len(n.stack) - 1
	n.cur = n.stack[last]
	n.stack = n.stack[:last]
	return true
}

// SelectTab switches to one of the role's primary destinations and clears
// the back-stack.
func (n *Navigator) SelectTab(dest domain.Destination) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.topo.Known(dest) {
		return fmt.Errorf("%w: %s", ErrUnknownDestination, dest)
	}
	for _, tab := range n.topo.tabs[n.role] {
		if tab == dest {
			n.cur = domain.Node{Destination: dest}
			n.stack = nil
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not a tab", ErrNotPermitted, dest)
}

// Reset remounts role's root and drops the history.
func (n *Navigator) Reset(role domain.Role) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mount(role)
}

// Current returns the active node.
func (n *Navigator) Current() domain.Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return domain.Node{Destination: n.cur.Destination, Params: n.cur.Params.Clone()}
}

// Role returns the role the navigator is mounted for.
func (n *Navigator) Role() domain.Role {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.role
}

// Depth returns the number of nodes behind the current one.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}

// History returns the back-stack followed by the current node, oldest first.
func (n *Navigator) History() []domain.Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Node, 0, len(n.stack)+1)
	for _, node := range n.stack {
		out = append(out, domain.Node{Destination: node.Destination, Params: node.Params.Clone()})
	}
	return append(out, domain.Node{Destination: n.cur.Destination, Params: n.cur.Params.Clone()})
}

// Compile-time assertion that Navigator implements domain.Navigator.
var _ domain.Navigator = (*Navigator)(nil)
