package parallel

import (
	"context"
	"log"

	"github.com/viant/parallel/service/event"
)

// Region lifecycle event types.
const (
	EventRegionEnter = "region.enter"
	EventRegionExit  = "region.exit"
	EventWorkerDone  = "worker.done"
	EventWorkerFault = "worker.fault"
)

// RegionEvent is the payload published for region lifecycle transitions
// when an event service is configured.
type RegionEvent struct {
	RegionID   string `json:"regionID"`
	Type       string `json:"type"`
	ThreadNum  int    `json:"threadNum"`
	NumThreads int    `json:"numThreads"`
	Fault      *Fault `json:"fault,omitempty"`
}

func (r *Region) publishEvent(ctx context.Context, eventType string, threadNum int, fault *Fault) {
	if r.events == nil {
		return
	}
	publisher, err := event.PublisherOf[RegionEvent](r.events)
	if err != nil {
		log.Printf("parallel: failed to resolve event publisher: %v", err)
		return
	}
	payload := RegionEvent{
		RegionID:   r.id,
		Type:       eventType,
		ThreadNum:  threadNum,
		NumThreads: r.numThreads,
		Fault:      fault,
	}
	evt := event.NewEvent(&event.Context{
		RegionID:  r.id,
		ThreadNum: threadNum,
		EventType: eventType,
	}, payload)
	if err := publisher.Publish(ctx, evt); err != nil {
		log.Printf("parallel: failed to publish %s event: %v", eventType, err)
	}
}
