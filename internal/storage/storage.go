// Package storage provides the durable key-value substrate the stores
// persist into.
package storage

// Backend reads and writes string values under independent keys. A
// missing key is not an error; callers fall back to their defaults.
// Writes fully overwrite the key, so repeating one is safe.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Memory is a Backend held entirely in memory. It backs tests and the
// degraded in-memory-only mode used when the database cannot be opened.
type Memory struct {
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}
