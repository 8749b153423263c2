package server

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSendQueueClosed 会话已关闭或发送队列已满
var ErrSendQueueClosed = errors.New("send queue closed or full")

// Hub 中继循环：把连接事件与世界注册表串起来。
// 连接、输入、断开三类事件在 step 锁下逐个处理，互不交错；
// 一次输入的“修改 + 快照 + 入队广播”是一个原子步骤。
type Hub struct {
	step sync.Mutex

	world       *World
	sessions    *sessionSet
	broadcaster Broadcaster
	metrics     *HubMetrics
	log         *zap.SugaredLogger

	initial   Vec3
	moveStep  *float64 // 仅构造时使用，之后以 world 为准
	queueSize int

	pongWait   time.Duration
	pingPeriod time.Duration
}

// HubOption 构造选项
type HubOption func(*Hub)

// WithBroadcaster 替换广播策略
func WithBroadcaster(b Broadcaster) HubOption {
	return func(h *Hub) { h.broadcaster = b }
}

// WithMetrics 使用外部指标对象
func WithMetrics(m *HubMetrics) HubOption {
	return func(h *Hub) { h.metrics = m }
}

// WithLogger 指定日志
func WithLogger(l *zap.SugaredLogger) HubOption {
	return func(h *Hub) { h.log = l }
}

// WithInitialPosition 修改出生点
func WithInitialPosition(p Vec3) HubOption {
	return func(h *Hub) { h.initial = p }
}

// WithMoveStep 以给定步长安装向右移动规则
func WithMoveStep(step float64) HubOption {
	return func(h *Hub) { h.moveStep = &step }
}

// WithSendQueue 每个连接的发送队列长度
func WithSendQueue(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.queueSize = n
		}
	}
}

// WithHeartbeat 心跳参数：pong 超时与 ping 周期，ping 必须短于 pong
func WithHeartbeat(pong, ping time.Duration) HubOption {
	return func(h *Hub) {
		if pong > 0 && ping > 0 && ping < pong {
			h.pongWait, h.pingPeriod = pong, ping
		}
	}
}

// NewHub 创建中继；world 由调用方持有并注入
func NewHub(world *World, opts ...HubOption) *Hub {
	h := &Hub{
		world:      world,
		sessions:   newSessionSet(),
		metrics:    &HubMetrics{},
		log:        Log,
		initial:    InitialPosition,
		queueSize:  64,
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.broadcaster == nil {
		h.broadcaster = FullSnapshot{Log: h.log}
	}
	if h.moveStep != nil {
		h.world.SetMoveStep(*h.moveStep)
	}
	return h
}

// World 返回注册表
func (h *Hub) World() *World { return h.world }

// Metrics 返回运行指标
func (h *Hub) Metrics() *HubMetrics { return h.metrics }

// Connect 注册新会话：在世界中创建玩家并告知客户端自己的 ID
func (h *Hub) Connect(id PlayerID, conn Sender) {
	h.step.Lock()
	defer h.step.Unlock()

	if old, ok := h.sessions.add(id, conn); ok && old != conn {
		old.Close()
	}
	h.world.Register(id, h.initial)
	h.metrics.IncConnects()
	if err := sendEvent(conn, EventConnected, ConnectedPayload{ID: id}); err != nil {
		h.log.Warnf("send connected to %s: %v", id, err)
	}
	h.log.Infof("client connected: %s (codec=%s, online=%d)", id, conn.Codec().Name(), h.sessions.len())
}

// HandleAction 处理一条入站消息。
// 不合法的载荷直接拒绝、不修改世界；玩家已离开则静默忽略。
func (h *Hub) HandleAction(id PlayerID, msg Message) error {
	keys, err := ParseAction(msg)
	if err != nil {
		h.metrics.IncMalformedRejected()
		return err
	}

	h.step.Lock()
	defer h.step.Unlock()

	if !h.world.ApplyInput(id, keys) {
		h.metrics.IncUnknownIgnored()
		return nil
	}
	h.metrics.IncActionsApplied()

	queued, dropped := h.broadcaster.Broadcast(h.world.Snapshot(), h.sessions.list())
	h.metrics.IncBroadcasts()
	h.metrics.AddFramesQueued(queued)
	h.metrics.AddQueueFullDropped(dropped)
	return nil
}

// Disconnect 注销会话，可重复调用
func (h *Hub) Disconnect(id PlayerID) {
	h.leave(id, nil)
}

// leave 由读泵退出时调用；conn 已被同 ID 的新会话顶替时不动新会话
func (h *Hub) leave(id PlayerID, conn Sender) {
	h.step.Lock()
	defer h.step.Unlock()

	cur, ok := h.sessions.remove(id, conn)
	if conn != nil && !ok {
		return
	}
	h.world.Deregister(id)
	if !ok {
		return
	}
	cur.Close()
	h.metrics.IncDisconnects()
	h.log.Infof("client disconnected: %s (online=%d)", id, h.sessions.len())
}

// Close 关闭所有会话并清空世界，进程退出前调用
func (h *Hub) Close() {
	h.step.Lock()
	defer h.step.Unlock()

	for id, conn := range h.sessions.drain() {
		h.world.Deregister(id)
		conn.Close()
		h.metrics.IncDisconnects()
	}
	h.log.Info("all sessions closed")
}

// SetMoveStep 热更新移动步长
func (h *Hub) SetMoveStep(step float64) {
	h.step.Lock()
	defer h.step.Unlock()
	h.world.SetMoveStep(step)
}

// MoveStep 当前移动步长；世界使用自定义规则时 ok 为 false
func (h *Hub) MoveStep() (float64, bool) {
	return h.world.MoveStep()
}

// Online 当前在线会话数
func (h *Hub) Online() int { return h.sessions.len() }
