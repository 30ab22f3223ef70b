package lookup

import (
	"context"
	"log"
	"time"

	"github.com/f13rce/mapip/geo"
)

// Poller re-resolves the public location on a fixed interval, off the
// render thread. Results are published into a single-slot channel with
// last-write-wins semantics: the render loop drains it without blocking at
// the top of each tick, so a slow or failed poll never stalls a frame.
type Poller struct {
	resolver Resolver
	interval time.Duration
	logger   *log.Logger
	updates  chan geo.Location
}

// NewPoller builds a poller. interval must be strictly longer than the
// frame interval; the caller validates that. logger may be nil.
func NewPoller(resolver Resolver, interval time.Duration, logger *log.Logger) *Poller {
	return &Poller{
		resolver: resolver,
		interval: interval,
		logger:   logger,
		updates:  make(chan geo.Location, 1),
	}
}

// Updates is the single-slot result channel.
func (p *Poller) Updates() <-chan geo.Location {
	return p.updates
}

// Start launches the polling goroutine. It stops when ctx is cancelled; an
// in-flight request is abandoned through the same context. Failed polls are
// logged and skipped; the next tick tries again with no backoff and no
// retry state to leak.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				loc, err := p.resolver.Resolve(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					p.logf("poll failed, keeping last known location: %v", err)
					continue
				}
				p.publish(loc)
			}
		}
	}()
}

// publish replaces any unconsumed result so the channel never blocks and
// the consumer only ever sees the freshest location.
func (p *Poller) publish(loc geo.Location) {
	for {
		select {
		case p.updates <- loc:
			return
		default:
			select {
			case <-p.updates:
			default:
			}
		}
	}
}

func (p *Poller) logf(format string, v ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, v...)
	}
}
