// Package input turns raw terminal bytes into per-frame key presses.
package input

import "io"

// Input represents the keys pressed since the previous frame.
type Input struct {
	Quit    bool
	Space   bool
	Enter   bool
	Steps   int // Net horizontal steps, negative is left
	Number  int // Last digit pressed, -1 if none
	Pressed []byte
}

// Any reports whether any byte arrived this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// Stream delivers input bytes via a channel so frames can poll without blocking.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The stream reports Closed once r returns an error and every byte is drained.
func StartStream(r io.ByteReader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// drain collects every byte available right now.
func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// ReadInput drains all available bytes from the stream (non-blocking) and parses them.
func ReadInput(s *Stream) Input {
	return Parse(s.drain())
}

// ResetKeyInput discards pending bytes, so a key held through a screen
// change does not leak into the next one.
func ResetKeyInput(s *Stream) {
	s.drain()
}

// Parse interprets a batch of bytes. Arrow keys arrive as ESC [ C / ESC [ D.
func Parse(buf []byte) Input {
	in := Input{Number: -1, Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				in.Steps++
				i += 2
				continue
			case 'D': // Left arrow
				in.Steps--
				i += 2
				continue
			case 'A', 'B': // Up and down do nothing
				i += 2
				continue
			}
		}

		applyByte(&in, b)
	}

	return in
}

func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		in.Quit = true
	case 'a', 'A', 'h', 'H':
		in.Steps--
	case 'd', 'D', 'l', 'L':
		in.Steps++
	case ' ':
		in.Space = true
	case '\n', '\r':
		in.Enter = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}
