package server

import "go.uber.org/zap"

// Sender 会话的下行端（ClientConn 实现，测试中可替换）
type Sender interface {
	Codec() Codec
	// Enqueue 非阻塞入队，队列满或已关闭时返回 false
	Enqueue(b []byte) bool
	Close()
}

// Broadcaster 广播策略：决定快照如何下发给各会话
type Broadcaster interface {
	Broadcast(snap Snapshot, targets []Sender) (queued, dropped int)
}

// FullSnapshot 每次都把全量快照发给所有会话（包括发送者）。
// 流量随人数平方增长，只适合小房间。
type FullSnapshot struct {
	Log *zap.SugaredLogger // 为空时使用全局 Log
}

func (f FullSnapshot) Broadcast(snap Snapshot, targets []Sender) (queued, dropped int) {
	log := f.Log
	if log == nil {
		log = Log
	}
	// 同一编码只序列化一次
	frames := make(map[string][]byte, 2)
	for _, t := range targets {
		codec := t.Codec()
		b, ok := frames[codec.Name()]
		if !ok {
			var err error
			b, err = codec.Encode(EventGameStateUpdate, snap)
			if err != nil {
				log.Errorf("encode snapshot (%s): %v", codec.Name(), err)
				dropped++
				continue
			}
			frames[codec.Name()] = b
		}
		if t.Enqueue(b) {
			queued++
		} else {
			dropped++
		}
	}
	return queued, dropped
}

// sendEvent 编码单条事件并发给一个会话
func sendEvent(s Sender, event string, data any) error {
	b, err := s.Codec().Encode(event, data)
	if err != nil {
		return err
	}
	if !s.Enqueue(b) {
		return ErrSendQueueClosed
	}
	return nil
}
