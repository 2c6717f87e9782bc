package console

// Action classifies one input byte.
type Action int

const (
	ActionLiteral     Action = iota // printable byte: append and echo
	ActionSubmit                    // CR or LF: finish the line
	ActionEraseLast                 // backspace or DEL
	ActionHistoryPrev               // ESC [ A
	ActionHistoryNext               // ESC [ B
	ActionComplete                  // TAB at the idle state
	ActionConsumed                  // byte swallowed while a sequence is pending
	ActionDropped                   // malformed or unrecognized sequence byte
)

func (a Action) String() string {
	switch a {
	case ActionLiteral:
		return "literal"
	case ActionSubmit:
		return "submit"
	case ActionEraseLast:
		return "erase-last"
	case ActionHistoryPrev:
		return "history-prev"
	case ActionHistoryNext:
		return "history-next"
	case ActionComplete:
		return "complete"
	case ActionConsumed:
		return "consumed"
	case ActionDropped:
		return "dropped"
	}
	return "unknown"
}

// decoderState tracks escape-sequence progress.
type decoderState int

const (
	stateIdle    decoderState = iota
	stateEscape               // seen ESC
	stateBracket              // seen ESC [
)

// Control bytes recognized by the decoder.
const (
	byteBackspace byte = 0x08
	byteTab       byte = 0x09
	byteLF        byte = 0x0a
	byteCR        byte = 0x0d
	byteEscape    byte = 0x1b
	byteDelete    byte = 0x7f
)

// step is the total transition function: every (state, byte) pair maps to
// exactly one (action, next state). CR/LF and backspace/DEL win over any
// pending sequence. A TAB or ESC arriving mid-sequence is dropped, as is any
// byte that does not continue a valid ESC [ A / ESC [ B sequence.
func step(s decoderState, b byte) (Action, decoderState) {
	switch b {
	case byteCR, byteLF:
		return ActionSubmit, stateIdle
	case byteBackspace, byteDelete:
		return ActionEraseLast, stateIdle
	}

	switch s {
	case stateEscape:
		if b == '[' {
			return ActionConsumed, stateBracket
		}
		return ActionDropped, stateIdle
	case stateBracket:
		switch b {
		case 'A':
			return ActionHistoryPrev, stateIdle
		case 'B':
			return ActionHistoryNext, stateIdle
		}
		return ActionDropped, stateIdle
	}

	switch b {
	case byteEscape:
		return ActionConsumed, stateEscape
	case byteTab:
		return ActionComplete, stateIdle
	}
	return ActionLiteral, stateIdle
}

// Decoder recognizes control bytes and arrow-key escape sequences one byte at
// a time. The zero value is ready to use.
type Decoder struct {
	state decoderState
}

// Next consumes one byte and returns its classification.
func (d *Decoder) Next(b byte) Action {
	action, next := step(d.state, b)
	d.state = next
	return action
}

// Reset returns the decoder to the idle state.
func (d *Decoder) Reset() {
	d.state = stateIdle
}
