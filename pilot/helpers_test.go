package pilot

import (
	"io"
	"log/slog"
	"math"

	"github.com/pthm-cable/skirmish/config"
)

func init() {
	config.MustInit("")
}

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestController uses the embedded defaults: 800x600 arena, 20x20 hull (point-blank 40),
// medium range 120, max power 3.
func newTestController() *Controller {
	opts := OptionsFromConfig(config.Cfg(), "tester")
	opts.Logger = quietLogger()
	return New(opts)
}

// centered is a healthy agent in the middle of the arena, far from every edge.
func centered() AgentStatus {
	return AgentStatus{
		X: 400, Y: 300,
		Heading:    45,
		GunHeading: 0,
		Energy:     100,
		Width:      20,
		Height:     20,
	}
}
