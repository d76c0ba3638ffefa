package zpaq

import "github.com/zparsgo/zparsgo/internal/zerr"

// postprocessor implements the small state machine from spec.md §4.5:
// state 0 reads a type byte t and moves to state t+1 (t=0 selects
// pass-through, t=1 selects a program), state 1
// streams pass-through bytes straight to output, states 2-4 absorb a
// little-endian program size and then its body, and state 5 consumes
// remaining bytes without emitting (the core never executes the
// program).
type postprocessor struct {
	state            int
	programRemaining int
}

func newPostprocessor() *postprocessor {
	return &postprocessor{}
}

// write feeds one decoded byte (or -1 for end-of-stream) through the
// state machine, appending to out when the current state emits.
func (p *postprocessor) write(c int, out *[]byte) error {
	switch p.state {
	case 0:
		if c < 0 {
			return zerr.Corrupt("unexpected EOS in postprocessor header")
		}
		p.state = c + 1
		if p.state != 1 && p.state != 2 {
			return zerr.Corrupt("unknown postprocessing type")
		}
		return nil

	case 1:
		if c >= 0 {
			*out = append(*out, byte(c))
		}
		return nil

	case 2:
		if c < 0 {
			return zerr.Corrupt("unexpected EOS reading PCOMP size low")
		}
		p.programRemaining = c
		p.state = 3
		return nil

	case 3:
		if c < 0 {
			return zerr.Corrupt("unexpected EOS reading PCOMP size high")
		}
		p.programRemaining |= c << 8
		if p.programRemaining == 0 {
			return zerr.Corrupt("empty PCOMP")
		}
		p.state = 4
		return nil

	case 4:
		if c < 0 {
			return zerr.Corrupt("unexpected EOS reading PCOMP body")
		}
		p.programRemaining--
		if p.programRemaining <= 0 {
			p.state = 5
		}
		return nil

	case 5:
		return nil

	default:
		return zerr.Corrupt("invalid postprocessor state")
	}
}
