package nav

import "log/slog"

// navMode distinguishes the queued request kinds.
type navMode int

const (
	modePush navMode = iota
	modeReplace
	modeTraverse
)

// navRequest is one queued unit of navigation work. The worker resolves done
// with the request's outcome; callers block on it to get their bool result.
type navRequest struct {
	mode  navMode
	path  string
	query Query
	delta int // traversal offset for modeTraverse
	done  chan error
}

// navigationQueue serializes navigation requests into strict FIFO,
// single-flight execution. A single worker (Engine.run) drains the channel,
// processing one request to completion before starting the next, so history
// mutations from concurrent callers are linearized in call order.
type navigationQueue struct {
	requests chan *navRequest
	logger   *slog.Logger
}

func newNavigationQueue(size int, logger *slog.Logger) *navigationQueue {
	return &navigationQueue{
		requests: make(chan *navRequest, size),
		logger:   logger,
	}
}

// enqueue submits a request without blocking. When the buffer is full the
// request is rejected immediately with ErrQueueFull rather than stalling the
// caller behind a slow guard.
func (q *navigationQueue) enqueue(req *navRequest) error {
	select {
	case q.requests <- req:
		return nil
	default:
		q.logger.Warn("navigation queue full, dropping request", "path", req.path)
		return ErrQueueFull
	}
}
