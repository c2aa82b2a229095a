package nfa

// rebuild copies n into a fresh builder so a transform can extend it.
// State IDs are preserved.
func rebuild(n *NFA) *Builder {
	b := NewBuilderWithCapacity(len(n.states) + 2)
	for i := range n.states {
		s := &n.states[i]
		b.states = append(b.states, State{
			id:          s.id,
			transitions: append([]Transition(nil), s.transitions...),
			epsilons:    append([]StateID(nil), s.epsilons...),
			pattern:     s.pattern,
		})
	}
	b.start = n.start
	return b
}

// Unanchored returns an automaton that accepts any input with a suffix in
// the language of n: a new start state loops on every byte and has an
// epsilon transition to the old start. Running it from offset 0 finds the
// earliest position where some match of n ends, in one pass.
func Unanchored(n *NFA) (*NFA, error) {
	b := rebuild(n)
	start := b.AddState()
	if err := b.AddTransition(start, 0x00, 0xFF, start); err != nil {
		return nil, err
	}
	if err := b.AddEpsilon(start, n.start); err != nil {
		return nil, err
	}
	b.SetStart(start)
	return b.Build()
}

// AcceptSuffixes returns an automaton that accepts any input with a prefix
// in the language of n. Every final state gets an epsilon transition to one
// new state per pattern that loops on every byte and stays final, so once a
// pattern has matched the automaton keeps accepting it.
func AcceptSuffixes(n *NFA) (*NFA, error) {
	b := rebuild(n)
	sinks := make(map[PatternID]StateID)
	for i := range n.states {
		p := n.states[i].pattern
		if p == NoPattern {
			continue
		}
		sink, ok := sinks[p]
		if !ok {
			sink = b.AddFinal(p)
			if err := b.AddTransition(sink, 0x00, 0xFF, sink); err != nil {
				return nil, err
			}
			sinks[p] = sink
		}
		if err := b.AddEpsilon(n.states[i].id, sink); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
