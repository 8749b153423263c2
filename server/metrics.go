package server

import (
	"sync/atomic"
)

// HubMetrics 记录中继运行期的关键指标（用于监控与调试）
type HubMetrics struct {
	Connects          int64 // 建立的会话数
	Disconnects       int64 // 结束的会话数
	ActionsApplied    int64 // 被应用到世界的输入数
	MalformedRejected int64 // 因载荷不合法被拒绝的输入数
	UnknownIgnored    int64 // 因玩家已不存在被忽略的输入数
	Broadcasts        int64 // 广播次数
	FramesQueued      int64 // 成功入队的下行帧数
	QueueFullDropped  int64 // 因发送队列满被丢弃的帧数
	SessionPanics     int64 // 被隔离的会话级 panic
}

func (m *HubMetrics) IncConnects()              { atomic.AddInt64(&m.Connects, 1) }
func (m *HubMetrics) IncDisconnects()           { atomic.AddInt64(&m.Disconnects, 1) }
func (m *HubMetrics) IncActionsApplied()        { atomic.AddInt64(&m.ActionsApplied, 1) }
func (m *HubMetrics) IncMalformedRejected()     { atomic.AddInt64(&m.MalformedRejected, 1) }
func (m *HubMetrics) IncUnknownIgnored()        { atomic.AddInt64(&m.UnknownIgnored, 1) }
func (m *HubMetrics) IncBroadcasts()            { atomic.AddInt64(&m.Broadcasts, 1) }
func (m *HubMetrics) AddFramesQueued(n int)     { atomic.AddInt64(&m.FramesQueued, int64(n)) }
func (m *HubMetrics) AddQueueFullDropped(n int) { atomic.AddInt64(&m.QueueFullDropped, int64(n)) }
func (m *HubMetrics) IncSessionPanics()         { atomic.AddInt64(&m.SessionPanics, 1) }

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *HubMetrics) Snapshot() map[string]any {
	return map[string]any{
		"connects":           atomic.LoadInt64(&m.Connects),
		"disconnects":        atomic.LoadInt64(&m.Disconnects),
		"actions_applied":    atomic.LoadInt64(&m.ActionsApplied),
		"malformed_rejected": atomic.LoadInt64(&m.MalformedRejected),
		"unknown_ignored":    atomic.LoadInt64(&m.UnknownIgnored),
		"broadcasts":         atomic.LoadInt64(&m.Broadcasts),
		"frames_queued":      atomic.LoadInt64(&m.FramesQueued),
		"queue_full_dropped": atomic.LoadInt64(&m.QueueFullDropped),
		"session_panics":     atomic.LoadInt64(&m.SessionPanics),
	}
}
