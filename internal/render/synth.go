package render

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/Conceptual-Machines/magda-harmony/internal/logger"
)

const (
	DefaultSynthBinary = "/usr/bin/fluidsynth"
	DefaultSoundFont   = "/usr/share/sounds/sf2/default-GM.sf2"
)

// Synth plays MIDI files through an external synthesizer process
type Synth struct {
	Binary    string
	SoundFont string
}

// NewSynth returns a synth, filling empty settings with the defaults
func NewSynth(binary, soundFont string) *Synth {
	if binary == "" {
		binary = DefaultSynthBinary
	}
	if soundFont == "" {
		soundFont = DefaultSoundFont
	}
	return &Synth{Binary: binary, SoundFont: soundFont}
}

// Play runs the synthesizer on path and waits for it to finish. Playback
// failures are returned to the caller; they never affect the generated piece.
func (s *Synth) Play(ctx context.Context, path string) error {
	if _, err := exec.LookPath(s.Binary); err != nil {
		return fmt.Errorf("synthesizer not available: %w", err)
	}
	cmd := exec.CommandContext(ctx, s.Binary, "-ni", s.SoundFont, path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.Warn("Synthesizer exited with error", logger.Fields{
			"binary": s.Binary,
			"file":   path,
			"output": string(output),
		})
		return fmt.Errorf("synthesizer failed: %w", err)
	}
	return nil
}
