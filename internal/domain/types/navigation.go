package types

// Destination names a screen reachable through navigation.
type Destination string

// String returns the string form of the destination.
func (d Destination) String() string { return string(d) }

// Params are the optional arguments handed to a destination.
type Params map[string]string

// Clone returns an independent copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Node is one entry in the navigation history.
type Node struct {
	Destination Destination `json:"destination"`
	Params      Params      `json:"params,omitempty"`
}
