package event

import (
	"time"

	"github.com/viant/parallel/internal/clock"
)

// Context identifies the region and worker an event originated from.
type Context struct {
	RegionID    string `json:"regionID"`
	ThreadNum   int    `json:"threadNum"`
	EventType   string `json:"eventType"`
	TimeTakenMs int    `json:"timeTakenMs"`
}

// Event carries a typed payload together with its origin context.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
