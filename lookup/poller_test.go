package lookup

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f13rce/mapip/geo"
)

type stubResolver struct {
	calls atomic.Int64
	loc   geo.Location
	err   error
}

func (s *stubResolver) Resolve(ctx context.Context) (geo.Location, error) {
	s.calls.Add(1)
	return s.loc, s.err
}

func TestPublishLastWriteWins(t *testing.T) {
	p := NewPoller(nil, time.Minute, nil)

	p.publish(geo.Location{IP: "1.1.1.1"})
	p.publish(geo.Location{IP: "2.2.2.2"})
	p.publish(geo.Location{IP: "3.3.3.3"})

	select {
	case loc := <-p.Updates():
		assert.Equal(t, "3.3.3.3", loc.IP, "only the freshest result survives")
	default:
		t.Fatal("expected a pending update")
	}

	select {
	case loc := <-p.Updates():
		t.Fatalf("slot should be empty, got %s", loc.IP)
	default:
	}
}

func TestPollerPublishesResults(t *testing.T) {
	stub := &stubResolver{loc: geo.Location{IP: "1.2.3.4", Lat: 40, Lon: -75}}
	p := NewPoller(stub, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	select {
	case loc := <-p.Updates():
		assert.Equal(t, "1.2.3.4", loc.IP)
	case <-time.After(time.Second):
		t.Fatal("no update within a second")
	}
}

func TestPollerSkipsFailures(t *testing.T) {
	stub := &stubResolver{err: errors.New("service down")}
	p := NewPoller(stub, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	select {
	case loc := <-p.Updates():
		t.Fatalf("failed polls must publish nothing, got %s", loc.IP)
	default:
	}
	assert.Greater(t, stub.calls.Load(), int64(1), "poller keeps trying on its cadence")
}

func TestPollerStopsOnCancel(t *testing.T) {
	stub := &stubResolver{loc: geo.Location{IP: "1.2.3.4"}}
	p := NewPoller(stub, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	require.Eventually(t, func() bool { return stub.calls.Load() > 0 },
		time.Second, time.Millisecond)
	cancel()

	time.Sleep(20 * time.Millisecond)
	before := stub.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, stub.calls.Load(), "no more resolves after cancellation")
}
