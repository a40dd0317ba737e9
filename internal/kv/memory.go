package kv

// Memory is a process-local Backend. Values are copied on the way in and out.
type Memory struct {
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (m *Memory) Read(key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Write(key string, val []byte) error {
	m.data[key] = append([]byte(nil), val...)
	return nil
}

func (m *Memory) Erase(key string) error {
	delete(m.data, key)
	return nil
}
