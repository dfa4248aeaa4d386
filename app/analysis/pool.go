package analysis

import (
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// Pool runs submitted functions on a fixed number of goroutines. A panicking function is
// reported to sentry and does not take its worker down.
type Pool struct {
	queue chan func()
	wg    sync.WaitGroup

	log logrus.FieldLogger
}

func NewPool(workers int, log logrus.FieldLogger) *Pool {
	workers = max(1, workers)

	p := &Pool{
		queue: make(chan func(), workers),
		log:   log,
	}

	p.wg.Add(workers)

	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		f, ok := <-p.queue
		if !ok {
			return
		}

		p.execute(f)
	}
}

func (p *Pool) execute(f func()) {
	defer func() {
		if err := recover(); err != nil {
			hub := sentry.CurrentHub().Clone()
			hub.Recover(fmt.Errorf("%w: %v", ErrJobPanicked, err))
			hub.Flush(time.Second * 5)

			p.log.WithField("panic", err).Error("worker recovered from a panic")
		}
	}()

	f()
}

// Submit blocks until a worker is free to queue f.
func (p *Pool) Submit(f func()) {
	p.queue <- f
}

// Wait stops accepting work and returns once every submitted function finished.
func (p *Pool) Wait() {
	close(p.queue)
	p.wg.Wait()
}
