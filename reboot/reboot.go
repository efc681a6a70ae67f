// Package reboot applies reactor reboot sequences to an octree and reports
// the resulting on volume.
package reboot

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/esultanik/reactor/geom"
	"github.com/esultanik/reactor/octree"
	"github.com/google/uuid"
)

// Mode selects how the octree bounds are chosen and which instructions are
// applied.
type Mode string

const (
	// Bounded restricts the reboot to the initialization area. Instructions
	// that are not fully contained in it are skipped.
	Bounded Mode = "bounded"

	// Unbounded sizes the octree to the bounding box of every instruction
	// and applies the full sequence.
	Unbounded Mode = "unbounded"
)

// ErrTypeUnknownMode is the error type returned for an unrecognized mode.
const ErrTypeUnknownMode = "reboot_unknown_mode"

// InitializationArea is the region the bounded reboot procedure is limited
// to, the ±50 cube around the origin.
var InitializationArea = geom.Cube(-50, 50)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Bounded:
		return Bounded, nil
	case Unbounded:
		return Unbounded, nil
	default:
		return "", errors.New("unknown reboot mode").
			WithType(ErrTypeUnknownMode).
			WithTag("mode", s)
	}
}

// Reboot applies the instruction sequence in order and returns the number of
// cells left on.
func Reboot(instructions []Instruction, mode Mode) (int64, error) {
	var bounds geom.Region
	switch mode {
	case Bounded:
		bounds = InitializationArea
	case Unbounded:
		for _, ins := range instructions {
			bounds = bounds.UnionBound(ins.Region)
		}
	default:
		return 0, errors.New("unknown reboot mode").
			WithType(ErrTypeUnknownMode).
			WithTag("mode", string(mode))
	}
	if bounds.Empty() {
		return 0, nil
	}

	runID := uuid.NewString()
	tree := octree.New(bounds)

	var applied, skipped int
	for _, ins := range instructions {
		if !bounds.Contains(ins.Region) {
			// Only reachable in bounded mode; the unbounded bounds contain
			// every instruction by construction.
			skipped++
			instructionsSkipped.Inc()
			continue
		}

		if ins.On {
			if err := tree.Add(ins.Region); err != nil {
				return 0, errors.New("applying reboot instruction failed").
					WithTag("run_id", runID).
					WithTag("instruction", ins.String()).
					Wrap(err)
			}
		} else {
			tree.Remove(ins.Region)
		}
		applied++
		instructionsApplied.With(opLabels(ins.On)).Inc()
	}

	volume := tree.Volume()

	logs.WithTag("run_id", runID).
		WithTag("mode", string(mode)).
		WithTag("bounds", bounds.String()).
		WithTag("applied", applied).
		WithTag("skipped", skipped).
		WithTag("nodes", tree.NodeCount()).
		WithTag("volume", volume).
		Debug("reboot sequence applied")

	return volume, nil
}
