package item

// Stack is the current/maximum quantity pair of a mergeable item.
type Stack struct {
	current int
	max     int
}

// NewStack creates a stack. max < 1 is clamped to 1 and current is clamped
// to [1, max]; only a merge may leave a stack empty.
func NewStack(current, max int) *Stack {
	if max < 1 {
		max = 1
	}
	if current < 1 {
		current = 1
	}
	s := &Stack{max: max}
	s.SetStack(current)
	return s
}

func (s *Stack) Current() int { return s.current }
func (s *Stack) Max() int     { return s.max }

// Room is how many units the stack can still absorb.
func (s *Stack) Room() int { return s.max - s.current }

// CanBeStackedOn reports whether the stack has room left.
func (s *Stack) CanBeStackedOn() bool { return s.current < s.max }

// AddToStack adds amount, capped at Max, and returns the remainder that did
// not fit.
func (s *Stack) AddToStack(amount int) int {
	if amount <= 0 {
		return 0
	}
	if room := s.Room(); amount > room {
		s.current = s.max
		return amount - room
	}
	s.current += amount
	return 0
}

// SetStack sets the current amount, capped at Max, and returns the remainder
// that did not fit.
func (s *Stack) SetStack(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > s.max {
		s.current = s.max
		return amount - s.max
	}
	s.current = amount
	return 0
}
