package network

// Telnet command constants (RFC 854), the subset the session filter handles.
const (
	cmdIAC  byte = 255 // Interpret As Command
	cmdDONT byte = 254
	cmdDO   byte = 253
	cmdWONT byte = 252
	cmdWILL byte = 251
	cmdSB   byte = 250 // Subnegotiation Begin
	cmdSE   byte = 240 // Subnegotiation End
)

type filterState int

const (
	fsData filterState = iota
	fsIAC
	fsOption
	fsSub
	fsSubIAC
)

// telnetFilter strips telnet negotiation from an inbound byte stream so stock
// telnet clients can drive a console session in character mode. Every WILL
// and DO is refused; subnegotiation payloads are discarded.
type telnetFilter struct {
	state filterState
	cmd   byte
}

// feed consumes one raw byte. It returns the data byte to pass through, if
// any, and refusal bytes to write back to the client.
func (f *telnetFilter) feed(b byte) (data byte, ok bool, reply []byte) {
	switch f.state {
	case fsIAC:
		switch b {
		case cmdIAC:
			// Escaped 255 byte
			f.state = fsData
			return cmdIAC, true, nil
		case cmdWILL, cmdWONT, cmdDO, cmdDONT:
			f.cmd = b
			f.state = fsOption
			return 0, false, nil
		case cmdSB:
			f.state = fsSub
			return 0, false, nil
		default:
			// Two-byte commands (GA, NOP, AYT, ...) carry no data
			f.state = fsData
			return 0, false, nil
		}

	case fsOption:
		f.state = fsData
		switch f.cmd {
		case cmdWILL:
			return 0, false, []byte{cmdIAC, cmdDONT, b}
		case cmdDO:
			return 0, false, []byte{cmdIAC, cmdWONT, b}
		}
		return 0, false, nil

	case fsSub:
		if b == cmdIAC {
			f.state = fsSubIAC
		}
		return 0, false, nil

	case fsSubIAC:
		if b == cmdSE {
			f.state = fsData
		} else {
			f.state = fsSub
		}
		return 0, false, nil
	}

	if b == cmdIAC {
		f.state = fsIAC
		return 0, false, nil
	}
	return b, true, nil
}
