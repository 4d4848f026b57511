package capture

// SelectFrames returns the frame numbers to capture between start and end
// (inclusive) when resampling the host's native frame rate to the target
// rate. A fractional cursor advances by nativeFPS/targetFPS per step and the
// truncated frame is emitted whenever it changes. When the ratio is
// non-integral this produces a non-uniformly spaced list; that is the
// documented behavior, not a bug. Emitted frames never repeat and always
// advance.
func SelectFrames(start, end int, nativeFPS, targetFPS float64) []int {
	step := nativeFPS / targetFPS

	var frames []int
	last := start - 1
	for cursor := float64(start); cursor <= float64(end); cursor += step {
		frame := int(cursor)
		if frame != last {
			frames = append(frames, frame)
			last = frame
		}
	}
	return frames
}
