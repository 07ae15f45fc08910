package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"voxel-terrain/internal/config"
)

const (
	wsReadLimit    = 4 * 1024
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 5 * time.Second
	updateSchemaID = "voxel-terrain://update.schema.json"
)

// compileUpdateSchema builds the schema of one client message. The field
// enum is generated from config.FieldNames so it cannot drift.
func compileUpdateSchema() (*jsonschema.Schema, error) {
	names, err := json.Marshal(config.FieldNames())
	if err != nil {
		return nil, err
	}
	doc := fmt.Sprintf(`{
		"type": "object",
		"required": ["field", "value"],
		"additionalProperties": false,
		"properties": {
			"field": {"enum": %s},
			"value": {"type": ["number", "string"]}
		}
	}`, names)
	schema, err := jsonschema.CompileString(updateSchemaID, doc)
	if err != nil {
		return nil, fmt.Errorf("compile update schema: %w", err)
	}
	return schema, nil
}

type wsReply struct {
	OK     bool   `json:"ok"`
	Update string `json:"update,omitempty"`
	Error  string `json:"error,omitempty"`
}

// decodeMessage validates one client message and parses it into an update.
func (s *Server) decodeMessage(msg []byte) (config.Update, error) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return config.Update{}, fmt.Errorf("%w: malformed json", config.ErrInvalidValue)
	}
	if err := s.schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return config.Update{}, fmt.Errorf("%w: %s", config.ErrInvalidValue, strings.TrimSpace(verr.Error()))
		}
		return config.Update{}, err
	}

	m := doc.(map[string]any)
	var raw string
	switch v := m["value"].(type) {
	case json.Number:
		raw = v.String()
	case string:
		raw = v
	}
	return config.ParseNamed(m["field"].(string), raw)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	log := s.log.With().Str("remote", r.RemoteAddr).Logger()
	log.Debug().Msg("websocket connected")
	defer log.Debug().Msg("websocket closed")

	ctx := r.Context()
	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		reply := wsReply{OK: true}
		u, err := s.decodeMessage(msg)
		if err == nil {
			err = s.sink.Send(ctx, u)
		}
		if err != nil {
			reply = wsReply{Error: err.Error()}
		} else {
			reply.Update = u.String()
			log.Debug().Stringer("update", u).Msg("update queued")
		}

		if err := writeWS(conn, reply); err != nil {
			return
		}
	}
}

func writeWS(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
