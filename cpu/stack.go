package cpu

const (
	STACK_LIMIT = 16 // Nesting depth of subroutine calls.
)

// Stack holds the return addresses of the active subroutine calls.
type Stack struct {
	Level [STACK_LIMIT]uint16 // Return addresses, outermost first.
	Depth int                 // Levels in use.
}

// Push a return address.
func (s *Stack) Push(addr uint16) (err error) {
	if s.Depth == STACK_LIMIT {
		err = ErrStackFull
		return
	}

	s.Level[s.Depth] = addr
	s.Depth++

	return
}

// Pop the innermost return address.
func (s *Stack) Pop() (addr uint16, err error) {
	if s.Depth == 0 {
		err = ErrStackEmpty
		return
	}

	s.Depth--
	addr = s.Level[s.Depth]
	s.Level[s.Depth] = 0

	return
}

func (s *Stack) Empty() bool {
	return s.Depth == 0
}

// Frames returns the levels in use.
func (s *Stack) Frames() []uint16 {
	return s.Level[:s.Depth]
}

func (s *Stack) Reset() {
	*s = Stack{}
}
