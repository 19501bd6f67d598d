package galois

// ForEachOrderedOptim runs items to completion under OPTIM conflict
// resolution: tasks execute freely and conflicts are found, and
// cascaded, after the fact. exFunc may be nil to skip the read-only
// phase.
func ForEachOrderedOptim[V any, L comparable](items []V, cmp Cmp[V], nhFunc NhFunc[V, L], exFunc ExFunc[V, L], opFunc OpFunc[V, L], opts ...Option) *Stats {
	cfg := newConfig(opts)
	cfg.Mode = OPTIM
	e := newOptimExecutor(cmp, nhFunc, exFunc, opFunc, cfg)
	e.pushInitial(items)
	return e.execute()
}

// ForEachOrderedPessim runs items to completion under PESSIM conflict
// resolution: a neighborhood acquisition immediately disables a
// lower-priority contender, rolling back a readied loser on the spot.
func ForEachOrderedPessim[V any, L comparable](items []V, cmp Cmp[V], nhFunc NhFunc[V, L], exFunc ExFunc[V, L], opFunc OpFunc[V, L], opts ...Option) *Stats {
	cfg := newConfig(opts)
	cfg.Mode = PESSIM
	e := newPessimExecutor(cmp, nhFunc, exFunc, opFunc, cfg)
	e.pushInitial(items)
	return e.execute()
}

// ForEachOrderedSpec dispatches to ForEachOrderedOptim or
// ForEachOrderedPessim based on Config.Mode (set via WithMode; OPTIM
// is the default).
func ForEachOrderedSpec[V any, L comparable](items []V, cmp Cmp[V], nhFunc NhFunc[V, L], exFunc ExFunc[V, L], opFunc OpFunc[V, L], opts ...Option) *Stats {
	cfg := newConfig(opts)
	if cfg.Mode == PESSIM {
		return ForEachOrderedPessim(items, cmp, nhFunc, exFunc, opFunc, opts...)
	}
	return ForEachOrderedOptim(items, cmp, nhFunc, exFunc, opFunc, opts...)
}
