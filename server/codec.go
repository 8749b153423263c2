package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Message 解码后的信封：事件名 + 尚未解析的载荷
type Message struct {
	Event string
	data  []byte
	codec Codec
}

// Bind 用原编解码器把载荷解析到 v
func (m Message) Bind(v any) error {
	if m.codec == nil {
		return errors.New("message has no codec")
	}
	if len(m.data) == 0 {
		return errors.New("empty data")
	}
	return m.codec.unmarshalData(m.data, v)
}

// Codec 连接使用的线格式
type Codec interface {
	Name() string
	// FrameType websocket 帧类型（文本或二进制）
	FrameType() int
	Encode(event string, data any) ([]byte, error)
	Decode(b []byte) (Message, error)
	unmarshalData(b []byte, v any) error
}

// CodecByName 按名称选择编解码器，未知名称回落到 JSON
func CodecByName(name string) Codec {
	switch strings.ToLower(name) {
	case "msgpack":
		return MsgPackCodec{}
	default:
		return JSONCodec{}
	}
}

// JSONCodec 文本帧，{"event":"...","data":{...}}
type JSONCodec struct{}

type jsonEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func (JSONCodec) Name() string   { return "json" }
func (JSONCodec) FrameType() int { return websocket.TextMessage }

func (JSONCodec) Encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonEnvelope{Event: event, Data: raw})
}

// Decode 信封字段名严格区分大小写（encoding/json 的结构体匹配不区分）
func (c JSONCodec) Decode(b []byte) (Message, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(b, &env); err != nil {
		return Message{}, err
	}
	var event string
	if raw, ok := env["event"]; ok {
		if err := json.Unmarshal(raw, &event); err != nil {
			return Message{}, fmt.Errorf("event: %w", err)
		}
	}
	return Message{Event: event, data: env["data"], codec: c}, nil
}

func (JSONCodec) unmarshalData(b []byte, v any) error { return json.Unmarshal(b, v) }

// MsgPackCodec 二进制帧，信封字段与 JSON 相同
type MsgPackCodec struct{}

type msgpackEnvelope struct {
	Event string             `msgpack:"event"`
	Data  msgpack.RawMessage `msgpack:"data,omitempty"`
}

func (MsgPackCodec) Name() string   { return "msgpack" }
func (MsgPackCodec) FrameType() int { return websocket.BinaryMessage }

func (MsgPackCodec) Encode(event string, data any) ([]byte, error) {
	raw, err := msgpack.Marshal(data)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(&msgpackEnvelope{Event: event, Data: raw})
}

func (c MsgPackCodec) Decode(b []byte) (Message, error) {
	var env msgpackEnvelope
	if err := msgpack.Unmarshal(b, &env); err != nil {
		return Message{}, err
	}
	return Message{Event: env.Event, data: env.Data, codec: c}, nil
}

func (MsgPackCodec) unmarshalData(b []byte, v any) error { return msgpack.Unmarshal(b, v) }
