package nmi

const (
	STACK_LIMIT = 4 // Maximum handler nesting depth
)

// Frame is the context saved on handler entry.
type Frame struct {
	Slot   Slot   // Handler that was entered.
	Resume uint32 // Pc to resume at when the handler returns.
}

// Stack is the handler nesting stack, innermost handler last.
type Stack struct {
	Data []Frame
}

func (s *Stack) Push(frame Frame) {
	s.Data = append(s.Data, frame)
}

func (s *Stack) Pop() (frame Frame, ok bool) {
	frame, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return len(s.Data) == STACK_LIMIT
}

func (s *Stack) Peek() (frame Frame, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

// Active reports whether any handler of the class is on the stack.
func (s *Stack) Active(class Class) bool {
	for _, frame := range s.Data {
		if frame.Slot.Class == class {
			return true
		}
	}
	return false
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
