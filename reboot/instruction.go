package reboot

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/esultanik/reactor/geom"
)

// ErrTypeMalformedInstruction is the error type returned when an instruction
// line does not match the expected format.
const ErrTypeMalformedInstruction = "reboot_malformed_instruction"

var instructionPattern = regexp.MustCompile(`^\s*(on|off)\s+` +
	`x\s*=\s*(-?\d+)\s*\.\.\s*(-?\d+)\s*,` +
	`\s*y\s*=\s*(-?\d+)\s*\.\.\s*(-?\d+)\s*,` +
	`\s*z\s*=\s*(-?\d+)\s*\.\.\s*(-?\d+)\s*$`)

// Instruction is a single reboot step: turn the cells of Region on or off.
type Instruction struct {
	On     bool
	Region geom.Region
}

func (i Instruction) String() string {
	state := "off"
	if i.On {
		state = "on"
	}
	return fmt.Sprintf("%s %s", state, i.Region)
}

// ParseInstruction parses a line of the form
// "on|off x=<int>..<int>,y=<int>..<int>,z=<int>..<int>".
func ParseInstruction(line string) (Instruction, error) {
	m := instructionPattern.FindStringSubmatch(line)
	if m == nil {
		return Instruction{}, errors.New("malformed reboot instruction").
			WithType(ErrTypeMalformedInstruction).
			WithTag("line", line)
	}

	var bounds [6]int64
	for i := range bounds {
		v, err := strconv.ParseInt(m[i+2], 10, 64)
		if err != nil {
			return Instruction{}, errors.New("malformed instruction bound").
				WithType(ErrTypeMalformedInstruction).
				WithTag("line", line).
				Wrap(err)
		}
		bounds[i] = v
	}

	return Instruction{
		On: m[1] == "on",
		Region: geom.NewRegion(
			geom.Point{X: bounds[0], Y: bounds[2], Z: bounds[4]},
			geom.Point{X: bounds[1], Y: bounds[3], Z: bounds[5]},
		),
	}, nil
}

// Parse reads one instruction per line. Blank lines and lines that do not
// parse are skipped, the latter with a warning.
func Parse(r io.Reader) ([]Instruction, error) {
	return parse(r, false)
}

// ParseStrict reads one instruction per line and fails on the first line
// that does not parse. Blank lines are still skipped.
func ParseStrict(r io.Reader) ([]Instruction, error) {
	return parse(r, true)
}

func parse(r io.Reader, strict bool) ([]Instruction, error) {
	var instructions []Instruction

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}

		ins, err := ParseInstruction(line)
		if err != nil {
			if strict {
				return nil, err
			}
			logs.Warn(errors.New("skipping reboot instruction").Wrap(err))
			continue
		}
		instructions = append(instructions, ins)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New("reading reboot instructions failed").Wrap(err)
	}
	return instructions, nil
}
