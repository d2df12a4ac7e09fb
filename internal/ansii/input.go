package ansii

import (
	"strconv"
	"strings"
)

type UiAction rune

const (
	Unknown   UiAction = iota
	Interrupt UiAction = 3  // Ctrl-C in raw mode
	Quit      UiAction = 81 // 'Q'
	Refresh   UiAction = 82 // 'R'
	NewGame   UiAction = 78 // 'N'
	Click     UiAction = -1
)

// Input is one decoded key or mouse press. Col and Row are 1-based terminal
// cells and only set for Click.
type Input struct {
	Action UiAction
	Col    int
	Row    int
}

// ProcessInput decodes a chunk of raw stdin. Mouse presses arrive as SGR
// sequences ESC [ < button ; col ; row M, releases end in 'm' and are dropped.
func ProcessInput(buf []byte) []Input {
	var out []Input
	for i := 0; i < len(buf); i++ {
		if buf[i] == 0x1b {
			n, in, ok := parseMouse(buf[i:])
			if ok {
				out = append(out, in)
			}
			if n > 0 {
				i += n - 1
			}
			continue
		}

		inputVal := int(buf[i])
		// Convert to UpperCase
		if inputVal >= 97 && inputVal <= 122 {
			inputVal = inputVal - 32
		}
		switch action := UiAction(inputVal); action {
		case Interrupt, Quit, Refresh, NewGame:
			out = append(out, Input{Action: action})
		}
	}
	return out
}

// parseMouse returns how many bytes the sequence used, and the click if it
// was a left button press.
func parseMouse(buf []byte) (int, Input, bool) {
	if len(buf) < 3 || buf[1] != '[' || buf[2] != '<' {
		return 0, Input{}, false
	}
	end := -1
	for j := 3; j < len(buf); j++ {
		if buf[j] == 'M' || buf[j] == 'm' {
			end = j
			break
		}
	}
	if end < 0 {
		return len(buf), Input{}, false
	}

	fields := strings.Split(string(buf[3:end]), ";")
	if len(fields) != 3 || buf[end] != 'M' {
		return end + 1, Input{}, false
	}
	button, err1 := strconv.Atoi(fields[0])
	col, err2 := strconv.Atoi(fields[1])
	row, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil || button != 0 {
		return end + 1, Input{}, false
	}
	return end + 1, Input{Action: Click, Col: col, Row: row}, true
}
