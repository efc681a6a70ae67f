package reboot

import (
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/esultanik/reactor/geom"
	"github.com/stretchr/testify/require"
)

const smallExample = `on x=10..12,y=10..12,z=10..12
on x=11..13,y=11..13,z=11..13
off x=9..11,y=9..11,z=9..11
on x=10..10,y=10..10,z=10..10
`

const initializationExample = `on x=-20..26,y=-36..17,z=-47..7
on x=-20..33,y=-21..23,z=-26..28
on x=-22..28,y=-29..23,z=-38..16
on x=-46..7,y=-6..46,z=-50..-1
on x=-49..1,y=-3..46,z=-24..28
on x=2..47,y=-22..22,z=-23..27
on x=-27..23,y=-28..26,z=-21..29
on x=-39..5,y=-6..47,z=-3..44
on x=-30..21,y=-8..43,z=-13..34
on x=-22..26,y=-27..20,z=-29..19
off x=-48..-32,y=26..41,z=-47..-37
on x=-12..35,y=6..50,z=-50..-2
off x=-48..-32,y=-32..-16,z=-29..-19
on x=-18..26,y=-33..15,z=-7..46
off x=-40..-22,y=-38..-28,z=23..41
on x=-16..35,y=-41..10,z=-47..6
off x=-32..-23,y=11..30,z=-14..3
on x=-49..-5,y=-3..45,z=-29..18
off x=18..30,y=-20..-8,z=-3..13
on x=-41..9,y=-7..43,z=-33..15
on x=-66158..-47384,y=-57902..-37075,z=-38154..-26420
on x=967..23432,y=45373..81175,z=27513..53682
`

func TestParseInstruction(t *testing.T) {
	ins, err := ParseInstruction("on x=10..12,y=-10..-8,z=0..2")
	require.NoError(t, err)
	require.True(t, ins.On)
	require.True(t, ins.Region.Equal(geom.NewRegion(
		geom.Point{X: 10, Y: -10, Z: 0},
		geom.Point{X: 12, Y: -8, Z: 2},
	)))

	ins, err = ParseInstruction("  off   x = 1 .. 2 , y = 3 .. 4 , z = 5 .. 6  ")
	require.NoError(t, err)
	require.False(t, ins.On)
	require.True(t, ins.Region.Equal(geom.NewRegion(
		geom.Point{X: 1, Y: 3, Z: 5},
		geom.Point{X: 2, Y: 4, Z: 6},
	)))
}

func TestParseInstructionMalformed(t *testing.T) {
	lines := []string{
		"",
		"on",
		"toggle x=1..2,y=3..4,z=5..6",
		"on x=1..2,y=3..4",
		"on x=a..b,y=3..4,z=5..6",
	}
	for _, line := range lines {
		_, err := ParseInstruction(line)
		require.Error(t, err, "line %q", line)
		require.True(t, errors.IsType(err, ErrTypeMalformedInstruction), "line %q", line)
	}
}

func TestInstructionString(t *testing.T) {
	ins, err := ParseInstruction("off x=1..2,y=3..4,z=5..6")
	require.NoError(t, err)
	require.Equal(t, "off x=1..2,y=3..4,z=5..6", ins.String())
}

func TestParseSkipsJunkLines(t *testing.T) {
	input := "on x=0..1,y=0..1,z=0..1\n\nnot an instruction\noff x=0..0,y=0..0,z=0..0\n"

	instructions, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, instructions, 2)
	require.True(t, instructions[0].On)
	require.False(t, instructions[1].On)
}

func TestParseStrictFailsOnJunkLines(t *testing.T) {
	input := "on x=0..1,y=0..1,z=0..1\nnot an instruction\n"

	_, err := ParseStrict(strings.NewReader(input))
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeMalformedInstruction))

	instructions, err := ParseStrict(strings.NewReader("on x=0..1,y=0..1,z=0..1\n"))
	require.NoError(t, err)
	require.Len(t, instructions, 1)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("bounded")
	require.NoError(t, err)
	require.Equal(t, Bounded, mode)

	mode, err = ParseMode("unbounded")
	require.NoError(t, err)
	require.Equal(t, Unbounded, mode)

	_, err = ParseMode("partial")
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeUnknownMode))
}

func TestRebootNoInstructions(t *testing.T) {
	for _, mode := range []Mode{Bounded, Unbounded} {
		volume, err := Reboot(nil, mode)
		require.NoError(t, err)
		require.Zero(t, volume, "mode %s", mode)
	}
}

func TestRebootUnknownMode(t *testing.T) {
	_, err := Reboot(nil, Mode("partial"))
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeUnknownMode))
}

func TestRebootSmallExample(t *testing.T) {
	instructions, err := Parse(strings.NewReader(smallExample))
	require.NoError(t, err)
	require.Len(t, instructions, 4)

	for _, mode := range []Mode{Bounded, Unbounded} {
		volume, err := Reboot(instructions, mode)
		require.NoError(t, err)
		require.Equal(t, int64(39), volume, "mode %s", mode)
	}
}

func TestRebootBoundedInitializationExample(t *testing.T) {
	instructions, err := Parse(strings.NewReader(initializationExample))
	require.NoError(t, err)
	require.Len(t, instructions, 22)

	// The last two instructions fall outside the initialization area and are
	// skipped.
	volume, err := Reboot(instructions, Bounded)
	require.NoError(t, err)
	require.Equal(t, int64(590784), volume)
}

func TestRebootBoundedSkipsOutsideInitializationArea(t *testing.T) {
	far, err := ParseInstruction("on x=100..110,y=100..110,z=100..110")
	require.NoError(t, err)

	volume, err := Reboot([]Instruction{far}, Bounded)
	require.NoError(t, err)
	require.Zero(t, volume)
}

func TestRebootUnboundedAppliesEverything(t *testing.T) {
	instructions, err := Parse(strings.NewReader(
		"on x=100..110,y=100..110,z=100..110\noff x=-5..5,y=-5..5,z=-5..5\n"))
	require.NoError(t, err)

	volume, err := Reboot(instructions, Unbounded)
	require.NoError(t, err)
	require.Equal(t, int64(11*11*11), volume)
}
