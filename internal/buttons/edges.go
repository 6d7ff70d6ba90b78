package buttons

// Edges turns level samples into presses. A button is reported on the
// sample where it goes from released to pressed and not again until it has
// been released. SW1+SW2 held together is the exception: it is reported on
// every sample while both stay down, so a staggered exit combo still exits.
type Edges struct {
	last State
}

// Next records level and returns the presses it starts.
func (e *Edges) Next(level State) State {
	var out State
	for i := range level {
		out[i] = level[i] && !e.last[i]
	}
	if level.ExitCombo() {
		out[SW1], out[SW2] = true, true
	}
	e.last = level
	return out
}
