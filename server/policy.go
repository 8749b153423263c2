package server

const (
	// KeyMoveRight 客户端上报的“向右”按键名
	KeyMoveRight = "ArrowRight"
	// DefaultMoveStep 每次输入的位移/旋转步长
	DefaultMoveStep = 0.1
)

// KeySet 当前按下的按键集合（键名 -> 是否按下）
type KeySet map[string]bool

// Pressed 判断按键是否处于按下状态，缺失视为未按下
func (k KeySet) Pressed(key string) bool {
	return k[key]
}

// MovePolicy 移动规则：根据输入计算玩家的新状态。
// 规则可替换，注册表只负责查找与写回。
type MovePolicy func(p Player, keys KeySet) Player

// MoveRight 只处理向右键：x 与偏航角各前进 step，其它按键暂不处理
func MoveRight(step float64) MovePolicy {
	return func(p Player, keys KeySet) Player {
		if keys.Pressed(KeyMoveRight) {
			p.Position.X += step
			p.Rotation.Y += step
		}
		return p
	}
}
