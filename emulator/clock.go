package emulator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DisplayMode selects when the clock calls the display.
type DisplayMode int

const (
	DISPLAY_EVERY  = DisplayMode(0) // every tick
	DISPLAY_FIXED  = DisplayMode(1) // at most once per DisplayPeriod
	DISPLAY_RESULT = DisplayMode(2) // only the final state
)

// Clock paces an emulator.
type Clock struct {
	Period        time.Duration // Time between ticks; zero runs free.
	DisplayPeriod time.Duration // Time between displays in DISPLAY_FIXED mode.
	Mode          DisplayMode
	Display       Display // Optional.
}

// SetFrequency sets the tick period from a frequency in Hz.
func (clk *Clock) SetFrequency(hz float64) (err error) {
	if hz <= 0 {
		err = ErrFrequency
		return
	}

	clk.Period = time.Duration(float64(time.Second) / hz)
	return
}

// SetDisplayFrequency sets the display mode from a frequency in Hz.
// Zero displays every tick.
func (clk *Clock) SetDisplayFrequency(hz float64) (err error) {
	switch {
	case hz < 0:
		err = ErrFrequency
	case hz == 0:
		clk.Mode = DISPLAY_EVERY
		clk.DisplayPeriod = 0
	default:
		clk.Mode = DISPLAY_FIXED
		clk.DisplayPeriod = time.Duration(float64(time.Second) / hz)
	}

	return
}

// Run starts the emulator and ticks it until it halts, faults, or the
// context is cancelled. A cancelled run leaves the CPU stopped.
func (clk *Clock) Run(ctx context.Context, emu *Emulator) (err error) {
	var ticker *time.Ticker
	if clk.Period > 0 {
		ticker = time.NewTicker(clk.Period)
		defer ticker.Stop()
	}

	if clk.Display != nil {
		clk.Display.Begin()
	}

	emu.Start()

	var shown time.Time
	defer func() {
		if emu.Running() {
			emu.Stop()
		}
		if clk.Display != nil {
			if clk.Mode != DISPLAY_EVERY {
				clk.Display.Show(emu)
			}
			clk.Display.End()
		}
		if emu.Verbose {
			logrus.WithFields(logrus.Fields{
				"ticks": emu.Ticks(),
				"error": err,
			}).Debug("emulator: clock stopped")
		}
	}()

	for {
		if ticker != nil {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			case <-ticker.C:
			}
		} else {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			default:
			}
		}

		var done bool
		done, err = emu.Tick()

		if clk.Display != nil {
			switch clk.Mode {
			case DISPLAY_EVERY:
				clk.Display.Show(emu)
			case DISPLAY_FIXED:
				now := time.Now()
				if !done && err == nil && now.Sub(shown) >= clk.DisplayPeriod {
					clk.Display.Show(emu)
					shown = now
				}
			}
		}

		if err != nil || done {
			return
		}
	}
}
