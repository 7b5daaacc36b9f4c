package game

import (
	"github.com/pthm-cable/skirmish/pilot"
)

func order(v float64) pilot.Command { return pilot.Command{Value: v, Set: true} }

// Duck sits still and never fires.
type Duck struct{ name string }

// NewDuck creates a duck drone.
func NewDuck(name string) *Duck { return &Duck{name: name} }

func (d *Duck) Name() string { return d.name }

func (d *Duck) Step(pilot.Tick) pilot.Orders { return pilot.Orders{} }

// Spinner circles in place, sweeping its gun and firing light shots at anything it sees.
type Spinner struct{ name string }

// NewSpinner creates a spinner drone.
func NewSpinner(name string) *Spinner { return &Spinner{name: name} }

func (s *Spinner) Name() string { return s.name }

func (s *Spinner) Step(t pilot.Tick) pilot.Orders {
	o := pilot.Orders{
		TurnBody:   order(10),
		Move:       order(8),
		TurnSensor: order(20),
	}
	for _, ev := range t.Events {
		if _, ok := ev.(pilot.ContactObserved); ok {
			o.Fire = order(1)
			break
		}
	}
	return o
}

// crawlerRange is the distance inside which a crawler opens fire.
const crawlerRange = 400

// Crawler drives along the walls, turning a right angle whenever it runs into one.
type Crawler struct{ name string }

// NewCrawler creates a crawler drone.
func NewCrawler(name string) *Crawler { return &Crawler{name: name} }

func (c *Crawler) Name() string { return c.name }

func (c *Crawler) Step(t pilot.Tick) pilot.Orders {
	o := pilot.Orders{
		Move:       order(100),
		TurnSensor: order(-15),
	}
	for _, ev := range t.Events {
		switch ev := ev.(type) {
		case pilot.WallImpact:
			o.TurnBody = order(90)
		case pilot.ContactObserved:
			if ev.Distance <= crawlerRange {
				o.Fire = order(2)
			}
		}
	}
	return o
}
