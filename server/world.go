package server

import "sync"

// World 权威世界注册表：每个在线连接对应一个玩家
// 写操作独占锁，快照读取走读锁
type World struct {
	mu      sync.RWMutex
	players map[PlayerID]*Player
	policy  MovePolicy
	// 当前规则是 MoveRight 时记录其步长
	step      float64
	stepKnown bool
}

// NewWorld 创建世界；policy 为空时使用默认的向右移动规则
func NewWorld(policy MovePolicy) *World {
	w := &World{
		players: make(map[PlayerID]*Player),
		policy:  policy,
	}
	if policy == nil {
		w.policy = MoveRight(DefaultMoveStep)
		w.step, w.stepKnown = DefaultMoveStep, true
	}
	return w
}

// Register 加入玩家；重复 ID 直接覆盖（后写为准），朝向重置为 0
func (w *World) Register(id PlayerID, initial Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.players[id] = &Player{ID: id, Position: initial}
}

// Deregister 移除玩家，不存在时无操作
func (w *World) Deregister(id PlayerID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.players, id)
}

// ApplyInput 按当前移动规则应用输入。
// 玩家不存在时忽略并返回 false，不会重新创建已删除的玩家。
func (w *World) ApplyInput(id PlayerID, keys KeySet) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[id]
	if !ok {
		return false
	}
	next := w.policy(*p, keys)
	// ID 由注册表持有，规则不能改写
	p.Position = next.Position
	p.Rotation = next.Rotation
	return true
}

// Snapshot 返回全量状态的副本
func (w *World) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	snap := make(Snapshot, len(w.players))
	for id, p := range w.players {
		snap[id] = p.State()
	}
	return snap
}

// Get 读取单个玩家
func (w *World) Get(id PlayerID) (Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// Len 在线玩家数
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.players)
}

// SetPolicy 热替换移动规则
func (w *World) SetPolicy(policy MovePolicy) {
	if policy == nil {
		return
	}
	w.mu.Lock()
	w.policy = policy
	w.step, w.stepKnown = 0, false
	w.mu.Unlock()
}

// SetMoveStep 安装给定步长的向右移动规则
func (w *World) SetMoveStep(step float64) {
	w.mu.Lock()
	w.policy = MoveRight(step)
	w.step, w.stepKnown = step, true
	w.mu.Unlock()
}

// MoveStep 当前步长；规则不是 MoveRight 时 ok 为 false
func (w *World) MoveStep() (step float64, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.step, w.stepKnown
}
