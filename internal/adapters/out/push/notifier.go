// Package push delivers poll hints to connected robots. A hint tells the
// robot that new work entered its queue so it can poll immediately instead
// of waiting out the interval; polling stays the source of truth.
package push

import (
	"context"
	"log/slog"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/robotcommand"
)

// Hub implements CommandNotifier with in-process channel fan-out. Each
// subscription gets a one-slot channel; a hint that cannot be delivered
// immediately is dropped, never queued, so the notifying transaction is
// never blocked by a slow or disconnected robot.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]chan struct{}

	logger *slog.Logger
}

// NewHub creates an empty notification hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[uint64]chan struct{}),
		logger: logger.With("component", "push_hub"),
	}
}

// Subscribe registers interest in poll hints for one robot. The returned
// channel carries at most one buffered hint; the cancel function must be
// called when the subscriber goes away.
func (h *Hub) Subscribe(robotID kernel.UUID) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	key := robotID.String()

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[key] == nil {
		h.subs[key] = make(map[uint64]chan struct{})
	}
	h.subs[key][id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if robotSubs, ok := h.subs[key]; ok {
			delete(robotSubs, id)
			if len(robotSubs) == 0 {
				delete(h.subs, key)
			}
		}
	}

	return ch, cancel
}

// NotifyCommandQueued pushes a hint to every subscriber of the command's
// robot. Fire-and-forget: full or absent subscribers are skipped.
func (h *Hub) NotifyCommandQueued(ctx context.Context, command *robotcommand.RobotCommand) {
	if command == nil {
		return
	}

	key := command.RobotID().String()

	h.mu.RLock()
	defer h.mu.RUnlock()

	robotSubs := h.subs[key]
	if len(robotSubs) == 0 {
		return
	}

	for _, ch := range robotSubs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}

	h.logger.DebugContext(ctx, "Poll hint delivered",
		"robot_id", key,
		"command_type", command.Type().String(),
		"subscribers", len(robotSubs),
	)
}
