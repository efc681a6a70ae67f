// Package smoketest runs known reboot scenarios through the engine and
// checks their published volumes, a quick end-to-end verification of a
// deployed binary.
package smoketest

import (
	"context"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/esultanik/reactor/reboot"
)

// ErrTypeVolumeMismatch is the error type returned when a scenario does not
// produce its expected volume.
const ErrTypeVolumeMismatch = "smoketest_volume_mismatch"

type scenario struct {
	name         string
	mode         reboot.Mode
	instructions string
	volume       int64
}

var scenarios = []scenario{
	{
		name: "overlapping cubes",
		mode: reboot.Unbounded,
		instructions: `on x=10..12,y=10..12,z=10..12
on x=11..13,y=11..13,z=11..13
off x=9..11,y=9..11,z=9..11
on x=10..10,y=10..10,z=10..10
`,
		volume: 39,
	},
	{
		name: "initialization area",
		mode: reboot.Bounded,
		instructions: `on x=-20..26,y=-36..17,z=-47..7
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
`,
		volume: 590784,
	},
}

// Run executes every scenario and returns the first failure.
func Run(ctx context.Context) error {
	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			return err
		}

		instructions, err := reboot.ParseStrict(strings.NewReader(s.instructions))
		if err != nil {
			return errors.New("loading smoke test scenario failed").
				WithTag("scenario", s.name).
				Wrap(err)
		}

		volume, err := reboot.Reboot(instructions, s.mode)
		if err != nil {
			return errors.New("running smoke test scenario failed").
				WithTag("scenario", s.name).
				Wrap(err)
		}
		if volume != s.volume {
			return errors.New("smoke test scenario produced a wrong volume").
				WithType(ErrTypeVolumeMismatch).
				WithTag("scenario", s.name).
				WithTag("mode", string(s.mode)).
				WithTag("expected", s.volume).
				WithTag("actual", volume)
		}

		logs.WithTag("scenario", s.name).
			WithTag("mode", string(s.mode)).
			WithTag("volume", volume).
			Info("smoke test scenario passed")
	}
	return nil
}
