package vellum

import (
	"encoding/json"
	"fmt"
)

// Request is one wire envelope: an action name plus its parameters.
type Request struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Execute decodes and runs one {action, params} command. Decode failures
// and command failures both come back in the result; a bad request can
// never take the engine down.
func (e *Engine) Execute(action string, params json.RawMessage) Result {
	cmd, err := DecodeCommand(action, params)
	if err != nil {
		Logger().Warn("bad request", "action", action, "error", err)
		return Result{Err: err}
	}
	res := e.Do(cmd)
	if res.Err != nil {
		Logger().Warn("command failed", "action", action, "error", res.Err)
	} else {
		Logger().Debug("command", "action", action)
	}
	return res
}

// HandleRequest runs one JSON-encoded request and returns the JSON
// response: {"success": true, ...} or {"error": ...}.
func (e *Engine) HandleRequest(raw []byte) []byte {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return encodeResult(Result{Err: fmt.Errorf("bad request: %w", err)})
	}
	return encodeResult(e.Execute(req.Action, req.Params))
}

func encodeResult(r Result) []byte {
	data, err := json.Marshal(r)
	if err != nil {
		Logger().Warn("encode response", "error", err)
		return []byte(`{"error":"internal: encode response"}`)
	}
	return data
}

// objectTree materializes group subtrees for serialization: the outer
// Children field shadows the object's flat ID list.
type objectTree struct {
	*SceneObject
	Children []objectTree `json:"children,omitempty"`
}

func (e *Engine) buildTree(ids []ID) []objectTree {
	out := make([]objectTree, 0, len(ids))
	for _, id := range ids {
		obj := e.doc.Find(id)
		if obj == nil {
			continue
		}
		out = append(out, objectTree{SceneObject: obj, Children: e.buildTree(obj.Children)})
	}
	return out
}

// ObjectsJSON renders the document's objects as a JSON array in z-order,
// group children nested under their parents.
func (e *Engine) ObjectsJSON() ([]byte, error) {
	return json.Marshal(e.buildTree(e.doc.Order))
}
