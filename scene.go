package rendergraph

import "fmt"

// QueueID selects a draw queue of a scene.
type QueueID int

// Draw queues a scene provides.
const (
	QueueGeometry QueueID = iota
	QueueForward
	QueueOverlay
	QueueShadow
)

// String returns the queue name.
func (q QueueID) String() string {
	switch q {
	case QueueGeometry:
		return "geometry"
	case QueueForward:
		return "forward"
	case QueueOverlay:
		return "overlay"
	case QueueShadow:
		return "shadow"
	default:
		return fmt.Sprintf("QueueID(%d)", int(q))
	}
}

// DrawQueue is an ordered list of draw submissions.
type DrawQueue interface {
	// Len returns the number of queued draws.
	Len() int

	// Draw records every queued draw into ctx.
	Draw(ctx RenderContext, cam *Camera) error
}

// Scene supplies the draw queues rendered by passes.
type Scene interface {
	// Queue returns the queue with the given id. It never returns nil;
	// an absent queue is empty.
	Queue(id QueueID) DrawQueue
}

// EmptyQueue is a DrawQueue with nothing to draw.
type EmptyQueue struct{}

// Len returns 0.
func (EmptyQueue) Len() int { return 0 }

// Draw does nothing.
func (EmptyQueue) Draw(RenderContext, *Camera) error { return nil }

// QueueFunc adapts a function drawing count items to a DrawQueue.
type QueueFunc struct {
	Count int
	Fn    func(ctx RenderContext, cam *Camera) error
}

// Len returns Count.
func (q QueueFunc) Len() int { return q.Count }

// Draw calls Fn.
func (q QueueFunc) Draw(ctx RenderContext, cam *Camera) error {
	if q.Fn == nil {
		return nil
	}
	return q.Fn(ctx, cam)
}

// StaticScene is a Scene backed by a map of queues.
type StaticScene map[QueueID]DrawQueue

// Queue returns the queue for id, or an EmptyQueue.
func (s StaticScene) Queue(id QueueID) DrawQueue {
	if q, ok := s[id]; ok && q != nil {
		return q
	}
	return EmptyQueue{}
}
