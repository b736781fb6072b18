package clustercore

import "time"

// StartPeriodicLoop starts an internal goroutine that calls DoPeriodicTasks
// on the given cadence, grounded on the teacher's schedule() goroutine. A
// host that drives its own timer loop can skip this and call
// DoPeriodicTasks directly instead; the two are mutually exclusive uses of
// the same entry point.
func (c *Cluster) StartPeriodicLoop(period time.Duration) {
	c.loopWG.Add(1)
	stop := make(chan bool)
	c.loopStop = stop

	go func() {
		defer c.loopWG.Done()
		for {
			c.DoPeriodicTasks(c.clock.Now())
			select {
			case <-c.clock.After(period):
			case <-stop:
				return
			}
		}
	}()
}

// StopPeriodicLoop stops the goroutine started by StartPeriodicLoop, if
// any, and waits for it to exit. Safe to call even if the loop was never
// started.
func (c *Cluster) StopPeriodicLoop() {
	if c.loopStop == nil {
		return
	}
	close(c.loopStop)
	c.loopWG.Wait()
	c.loopStop = nil
}
