package server

import "sync"

// sessionSet 当前在线的会话（ID -> 下行端）
type sessionSet struct {
	mu    sync.RWMutex
	conns map[PlayerID]Sender
}

func newSessionSet() *sessionSet {
	return &sessionSet{conns: make(map[PlayerID]Sender)}
}

// add 加入会话，返回被顶替的旧会话（若有）
func (s *sessionSet) add(id PlayerID, conn Sender) (Sender, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.conns[id]
	s.conns[id] = conn
	return old, ok
}

// remove 移除会话；only 非空时只有当前会话就是 only 才移除
func (s *sessionSet) remove(id PlayerID, only Sender) (Sender, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conn, ok := s.conns[id]
	if !ok || (only != nil && conn != only) {
		return nil, false
	}
	delete(s.conns, id)
	return conn, true
}

// drain 取出并清空全部会话
func (s *sessionSet) drain() map[PlayerID]Sender {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.conns
	s.conns = make(map[PlayerID]Sender)
	return out
}

// list 返回当前会话的切片副本，用于广播
func (s *sessionSet) list() []Sender {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Sender, 0, len(s.conns))
	for _, c := range s.conns {
		out = append(out, c)
	}
	return out
}

func (s *sessionSet) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}
