package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ClientConn 一个 WebSocket 会话的连接包装：读泵解析输入，写泵发送队列中的帧
type ClientConn struct {
	ws    *websocket.Conn
	codec Codec

	pongWait   time.Duration
	pingPeriod time.Duration

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewClientConn(ws *websocket.Conn, codec Codec, queueSize int) *ClientConn {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &ClientConn{
		ws:         ws,
		codec:      codec,
		pongWait:   pongWait,
		pingPeriod: pingPeriod,
		send:       make(chan []byte, queueSize),
	}
}

// Codec 该连接协商的线格式
func (c *ClientConn) Codec() Codec { return c.codec }

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- b:
		return true
	default:
		// 为了实时性丢弃本帧，下一次广播仍是全量快照
		return false
	}
}

// Close 关闭发送队列（写泵随之退出并关闭底层连接），可重复调用
func (c *ClientConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期 ping
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(c.codec.FrameType(), msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端输入并交给 Hub；任何退出路径（正常关闭、异常断开、心跳超时）都会注销玩家
func (c *ClientConn) readPump(h *Hub, id PlayerID) {
	defer c.ws.Close()
	defer h.leave(id, c)
	// 会话内的 panic 只结束本会话
	defer func() {
		if r := recover(); r != nil {
			h.metrics.IncSessionPanics()
			h.log.Errorf("session %s panic: %v", id, r)
		}
	}()
	c.keepalive()

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				h.log.Debugf("read from %s: %v", id, err)
			}
			return
		}
		msg, err := c.codec.Decode(payload)
		if err != nil {
			h.metrics.IncMalformedRejected()
			h.log.Warnf("discarding undecodable message from %s: %v", id, err)
			continue
		}
		if err := h.HandleAction(id, msg); err != nil {
			if errors.Is(err, ErrUnknownEvent) {
				h.log.Debugf("ignoring message from %s: %v", id, err)
			} else {
				h.log.Warnf("rejecting action from %s: %v", id, err)
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// ServeWS WebSocket 接入：/ws?codec=json|msgpack
// 会话 ID 由服务端分配，连接成功后以 connected 事件下发
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	codec := CodecByName(r.URL.Query().Get("codec"))

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("upgrade error: %v", err)
		return
	}

	id := PlayerID(uuid.NewString())
	client := NewClientConn(ws, codec, h.queueSize)
	client.pongWait, client.pingPeriod = h.pongWait, h.pingPeriod
	h.Connect(id, client)

	go client.writePump()
	go client.readPump(h, id)
}
