package capture

// restoreStack collects restore functions for temporarily overridden render
// state. Restore runs them in reverse acquisition order and clears the
// stack, so running it twice is harmless. Every job exit path (completion,
// cancellation, failure) must call it.
type restoreStack struct {
	restores []func()
}

// push records a restore function.
func (rs *restoreStack) push(restore func()) {
	if restore != nil {
		rs.restores = append(rs.restores, restore)
	}
}

// restoreAll unwinds the stack in reverse order.
func (rs *restoreStack) restoreAll() {
	for i := len(rs.restores) - 1; i >= 0; i-- {
		rs.restores[i]()
	}
	rs.restores = nil
}
