package server

import (
	"errors"
	"fmt"
)

// 事件名（与浏览器客户端约定）
const (
	EventPlayerAction    = "playerAction"    // 客户端 -> 服务端：当前按键状态
	EventGameStateUpdate = "gameStateUpdate" // 服务端 -> 客户端：全量世界快照
	EventConnected       = "connected"       // 服务端 -> 客户端：告知本连接分配到的 ID
)

var (
	// ErrMalformedAction 输入载荷结构不合法
	ErrMalformedAction = errors.New("malformed player action")
	// ErrUnknownEvent 不认识的事件名
	ErrUnknownEvent = errors.New("unknown event")
)

// ActionPayload playerAction 的载荷
// 示例：{"event":"playerAction","data":{"keysPressed":{"ArrowRight":true}}}
type ActionPayload struct {
	KeysPressed map[string]bool `json:"keysPressed" msgpack:"keysPressed" jsonschema:"required"`
}

// ConnectedPayload connected 的载荷
type ConnectedPayload struct {
	ID PlayerID `json:"id" msgpack:"id" jsonschema:"required"`
}

// ParseAction 校验入站消息并取出按键集合；不合法时返回的错误包裹 ErrMalformedAction 或 ErrUnknownEvent
func ParseAction(msg Message) (KeySet, error) {
	if msg.Event != EventPlayerAction {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, msg.Event)
	}
	// 先解成通用 map 再按原样的键名取值，避免大小写不同的字段被接受
	var payload map[string]any
	if err := msg.Bind(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAction, err)
	}
	raw, ok := payload["keysPressed"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing keysPressed", ErrMalformedAction)
	}
	keys := make(KeySet, len(raw))
	for k, v := range raw {
		pressed, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: key %q is %T, want bool", ErrMalformedAction, k, v)
		}
		keys[k] = pressed
	}
	return keys, nil
}
