// Demo program: a periodic timer ticks a fixed number of times,
// logging the elapsed interval each expiry, then a second timepoint
// anchored run shows the drift-free schedule.
package main

import (
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/connectivecpp/utility-rack/timer"
)

var (
	period = flag.Duration("period", 100*time.Millisecond, "timer period")
	ticks  = flag.Int("ticks", 5, "expiries per run")
)

func run(log *zap.Logger, name string, start func(*timer.PeriodicTimer, timer.Callback)) {
	done := make(chan struct{})
	count := 0

	var pt timer.PeriodicTimer
	start(&pt, func(elapsed time.Duration) bool {
		count++
		log.Info("tick",
			zap.String("run", name),
			zap.Int("count", count),
			zap.Duration("elapsed", elapsed),
		)
		if count >= *ticks {
			close(done)
			return false
		}
		return true
	})

	<-done
	pt.Cancel()
}

func main() {
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	run(log, "duration", func(pt *timer.PeriodicTimer, cb timer.Callback) {
		pt.Start(*period, cb)
	})
	run(log, "timepoint", func(pt *timer.PeriodicTimer, cb timer.Callback) {
		pt.StartAt(time.Now().Add(*period), *period, cb)
	})

	log.Info("all done")
}
