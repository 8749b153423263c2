package server

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait 单帧写超时
	writeWait = 5 * time.Second
	// pongWait 默认等待对端 pong 的最长时间，超时视为断线
	pongWait = 60 * time.Second
	// pingPeriod 默认 ping 周期，必须小于 pongWait
	pingPeriod = pongWait * 9 / 10
	// maxMessageSize 入站单条消息上限
	maxMessageSize = 64 << 10
)

// keepalive 设置读超时并在每次 pong 时续期；超时后读泵报错退出，走断开流程
func (c *ClientConn) keepalive() {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.pongWait))
	})
}

// ping 发送一次心跳
func (c *ClientConn) ping() error {
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}
