package mapdoc

// Properties is an insertion-ordered string map for worldspawn key/value
// pairs. Output order follows the order keys first appeared; setting an
// existing key overwrites its value without moving it.
type Properties struct {
	keys   []string
	values map[string]string
}

func NewProperties() *Properties {
	return &Properties{values: make(map[string]string)}
}

// Set upserts a key. Duplicate keys keep their original position and take
// the new value (last write wins).
func (p *Properties) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether it is present.
func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The slice is shared; callers
// must not modify it.
func (p *Properties) Keys() []string {
	return p.keys
}

// Len returns the number of distinct keys.
func (p *Properties) Len() int {
	return len(p.keys)
}
