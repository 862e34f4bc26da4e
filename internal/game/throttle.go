package game

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"
)

// dropLog prints capacity warnings without letting a saturated field flood
// the log. Suppressed lines are counted and reported with the next one.
type dropLog struct {
	limiter    *rate.Limiter
	suppressed int
}

func newDropLog() *dropLog {
	return &dropLog{limiter: rate.NewLimiter(rate.Every(time.Second), 3)}
}

func (d *dropLog) Printf(format string, args ...interface{}) {
	if !d.limiter.Allow() {
		d.suppressed++
		return
	}
	msg := fmt.Sprintf(format, args...)
	if d.suppressed > 0 {
		msg = fmt.Sprintf("%s (+%d suppressed)", msg, d.suppressed)
		d.suppressed = 0
	}
	log.Print(msg)
}
