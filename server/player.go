package server

// PlayerID 玩家会话唯一标识（由传输层在连接时分配）
type PlayerID string

// Vec3 三维坐标
type Vec3 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// Rotation 朝向，目前只有偏航角 y
type Rotation struct {
	Y float64 `json:"y" msgpack:"y"`
}

// InitialPosition 新玩家出生点
var InitialPosition = Vec3{X: 0, Y: 5, Z: -1.5}

// Player 世界中的玩家实体（服务端权威状态）
type Player struct {
	ID       PlayerID
	Position Vec3
	Rotation Rotation
}

// State 转为广播用的轻量状态
func (p Player) State() PlayerState {
	return PlayerState{Position: p.Position, Rotation: p.Rotation}
}

// PlayerState 为广播给客户端的状态，ID 作为快照的键
type PlayerState struct {
	Position Vec3     `json:"position" msgpack:"position"`
	Rotation Rotation `json:"rotation" msgpack:"rotation"`
}

// Snapshot 全量世界快照：玩家 ID -> 状态。是注册表的独立副本
type Snapshot map[PlayerID]PlayerState
