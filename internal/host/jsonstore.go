package host

import (
	"strconv"
	"sync"

	"github.com/streamforge/filterx/internal/object"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONMessageStore is a bundled reference MessageStore backed by a single
// JSON document, read with gjson and written with sjson. It stands in for
// the host's real binary key/value/typed-value record store for tests and
// for cmd/filterxctl, which accepts message fixtures as JSON.
//
// Field handles are allocated sequentially as names are first seen via
// Name, and a handle's "path" into the JSON document is just its
// registered name — this is a JSON path, not a protocol field id, but it
// lets the test double satisfy the MessageStore contract faithfully
// enough to drive the rest of the tree end-to-end.
type JSONMessageStore struct {
	mu     sync.Mutex
	doc    string
	byName map[string]uint32
	byID   map[uint32]string
	next   uint32
}

// NewJSONMessageStore creates a store pre-loaded with a JSON object, e.g.
// `{"MESSAGE":"hello","SOURCEIP":"10.0.0.1"}`.
func NewJSONMessageStore(json string) *JSONMessageStore {
	if json == "" {
		json = "{}"
	}
	return &JSONMessageStore{
		doc:    json,
		byName: make(map[string]uint32),
		byID:   make(map[uint32]string),
	}
}

func (s *JSONMessageStore) Name(name string) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byName[name]; ok {
		return id
	}
	s.next++
	id := s.next
	s.byName[name] = id
	s.byID[id] = name
	return id
}

func (s *JSONMessageStore) GetValue(handle uint32) ([]byte, object.LogType, bool) {
	s.mu.Lock()
	name, ok := s.byID[handle]
	doc := s.doc
	s.mu.Unlock()
	if !ok {
		return nil, object.LogNull, false
	}
	res := gjson.Get(doc, name)
	if !res.Exists() {
		return nil, object.LogNull, false
	}
	switch res.Type {
	case gjson.String:
		return []byte(res.Str), object.LogString, true
	case gjson.Number:
		if res.Num == float64(int64(res.Num)) {
			return []byte(strconv.FormatInt(int64(res.Num), 10)), object.LogInt, true
		}
		return []byte(res.Raw), object.LogDouble, true
	case gjson.True, gjson.False:
		return []byte(res.Raw), object.LogBool, true
	case gjson.Null:
		return nil, object.LogNull, true
	default:
		return []byte(res.Raw), object.LogString, true
	}
}

func (s *JSONMessageStore) SetValue(handle uint32, raw []byte, logType object.LogType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.byID[handle]
	if !ok {
		return
	}
	var updated string
	var err error
	switch logType {
	case object.LogInt:
		if n, perr := strconv.ParseInt(string(raw), 10, 64); perr == nil {
			updated, err = sjson.Set(s.doc, name, n)
			break
		}
		fallthrough
	case object.LogDouble:
		if f, perr := strconv.ParseFloat(string(raw), 64); perr == nil {
			updated, err = sjson.Set(s.doc, name, f)
			break
		}
		updated, err = sjson.Set(s.doc, name, string(raw))
	case object.LogBool:
		updated, err = sjson.Set(s.doc, name, string(raw) == "true")
	default:
		updated, err = sjson.Set(s.doc, name, string(raw))
	}
	if err == nil {
		s.doc = updated
	}
}

func (s *JSONMessageStore) UnsetValue(handle uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.byID[handle]
	if !ok {
		return
	}
	if updated, err := sjson.Delete(s.doc, name); err == nil {
		s.doc = updated
	}
}

// JSON returns the current document, for test assertions and CLI output.
func (s *JSONMessageStore) JSON() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}
