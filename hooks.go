package rediscoll

// Hooks are lightweight callbacks for high-signal events. Implementations
// MUST be cheap and non-blocking; collections call them on hot paths. Wrap
// with hooks/async to decouple slow sinks.
type Hooks interface {
	// Algebra fell back to a client-side fold: a non-collection operand was
	// involved, operands live on different stores, or the store has no
	// native command for op. operands counts the right-hand operands.
	ClientFallback(op string, operands int)

	// A privately opened scope committed a clear+repopulate bootstrap.
	ScopeCommit(key string, members int)

	// A collection's key was deleted by Clear or by an empty bootstrap.
	Cleared(key string)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) ClientFallback(string, int) {}
func (NopHooks) ScopeCommit(string, int)    {}
func (NopHooks) Cleared(string)             {}
