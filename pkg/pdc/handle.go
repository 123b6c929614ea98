package pdc

import "github.com/justyntemme/rtaudio/pkg/graph"

// Handle is the control surface exposed by Engine.PDC() (spec §6):
// latency queries, enable/disable, and SetChannelLatency for a manual
// per-channel latency floor on top of what the graph's route queries
// report.
type Handle struct {
	manager *Manager
}

// NewHandle wraps a Manager in a Handle.
func NewHandle(manager *Manager) Handle {
	return Handle{manager: manager}
}

// SetChannelLatency asserts a latency floor for channel, for latency
// the graph's route queries cannot see (e.g. device round-trip).
func (h Handle) SetChannelLatency(channel, samples int) Handle {
	h.manager.SetChannelLatency(channel, samples)
	return h
}

// MaxLatency returns the longest latency feeding channel.
func (h Handle) MaxLatency(channel int) int {
	return h.manager.MaxLatency(channel)
}

// ChannelCompensation returns the delay inserted on the path from
// node/port into channel.
func (h Handle) ChannelCompensation(node graph.NodeId, port, channel int) int {
	return h.manager.ChannelCompensation(node, port, channel)
}

// Enable turns PDC compensation on.
func (h Handle) Enable() Handle {
	h.manager.Enable()
	return h
}

// Disable bypasses PDC compensation.
func (h Handle) Disable() Handle {
	h.manager.Disable()
	return h
}

// Enabled reports whether PDC is active.
func (h Handle) Enabled() bool {
	return !h.manager.Bypassed()
}
