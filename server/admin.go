package server

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/invopop/jsonschema"
)

// HandleAdminConfig 读取与热更新移动规则
// GET  /admin/config  返回当前配置；世界使用自定义规则时不含 step
// POST /admin/config  以 JSON 载荷更新部分字段，如 {"step":0.2}
func (h *Hub) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	type cfg struct {
		Step *float64 `json:"step,omitempty"`
	}

	switch r.Method {
	case http.MethodGet:
		var cur cfg
		if step, ok := h.MoveStep(); ok {
			cur.Step = &step
		}
		writeJSON(w, cur)
	case http.MethodPost:
		var body cfg
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.Step != nil {
			h.SetMoveStep(*body.Step)
			h.log.Infof("config updated: step=%.2f", *body.Step)
		}
		writeJSON(w, map[string]any{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleAdminState 输出当前世界快照
// GET /admin/state
func (h *Hub) HandleAdminState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.world.Snapshot())
}

// HandleMetrics 输出运行指标
// GET /metrics
func (h *Hub) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"players": h.world.Len(),
		"online":  h.Online(),
		"metrics": h.metrics.Snapshot(),
	})
}

// HandleSchema 输出各事件载荷的 JSON Schema，便于客户端校验
// GET /schema
func HandleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, MessageSchemas())
}

// MessageSchemas 事件名 -> 载荷 schema
func MessageSchemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	reflectPayload := func(v any, title string) *jsonschema.Schema {
		s := reflector.ReflectFromType(reflect.TypeOf(v))
		s.Version = ""
		s.Title = title
		return s
	}

	state := reflectPayload(PlayerState{}, "Player State")
	snapshot := &jsonschema.Schema{
		Version:              jsonschema.Version,
		Type:                 "object",
		Title:                "Game State Update",
		Description:          "Full world snapshot keyed by player id, sent after every processed action.",
		AdditionalProperties: state,
	}

	action := reflectPayload(ActionPayload{}, "Player Action")
	action.Version = jsonschema.Version
	action.Description = "Currently held input keys."

	connected := reflectPayload(ConnectedPayload{}, "Connected")
	connected.Version = jsonschema.Version
	connected.Description = "Session id assigned by the server."

	return map[string]*jsonschema.Schema{
		EventPlayerAction:    action,
		EventGameStateUpdate: snapshot,
		EventConnected:       connected,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
