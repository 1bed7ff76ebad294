package cache

// Keyer generates cache keys.
type Keyer interface {
	// SolutionKey returns the key of the result of integrating the problem
	// whose boxes hash to problemHash.
	SolutionKey(problemHash string, opts SolutionKeyOpts) string
}

// SolutionKeyOpts holds the options that change an integration result.
type SolutionKeyOpts struct {
	Axis int    `json:"axis"`
	Mode string `json:"mode"`
}

// DefaultKeyer builds keys of the form "solution:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolutionKey hashes the problem hash together with opts.
func (DefaultKeyer) SolutionKey(problemHash string, opts SolutionKeyOpts) string {
	return hashKey("solution", problemHash, opts)
}
