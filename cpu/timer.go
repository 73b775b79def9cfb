package cpu

// TIMER_HZ is the countdown rate of the delay and sound timers.
const TIMER_HZ = 60

// Timer is an 8-bit countdown timer.
type Timer struct {
	Value uint8
}

// Set the timer.
func (tm *Timer) Set(value uint8) {
	tm.Value = value
}

// Read the timer.
func (tm *Timer) Read() uint8 {
	return tm.Value
}

// CountDown decrements the timer, stopping at zero.
// Returns true only on the tick where the timer reaches zero.
func (tm *Timer) CountDown() (expired bool) {
	if tm.Value == 0 {
		return
	}

	tm.Value--
	expired = tm.Value == 0
	return
}
