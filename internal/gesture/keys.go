package gesture

// KeyState records which keys are currently held for one viewport.
type KeyState struct {
	pressed map[string]bool
}

// NewKeyState returns an empty key record.
func NewKeyState() *KeyState {
	return &KeyState{pressed: make(map[string]bool)}
}

// Press marks name as held.
func (k *KeyState) Press(name string) {
	k.pressed[name] = true
}

// Release marks name as no longer held.
func (k *KeyState) Release(name string) {
	delete(k.pressed, name)
}

// Reset forgets every held key, e.g. when focus is lost.
func (k *KeyState) Reset() {
	clear(k.pressed)
}

// Pressed reports whether name is held.
func (k *KeyState) Pressed(name string) bool {
	return k.pressed[name]
}

// Any reports whether at least one of keys is held. An empty list
// means no activation key is required.
func (k *KeyState) Any(keys []string) bool {
	if len(keys) == 0 {
		return true
	}
	for _, key := range keys {
		if k.pressed[key] {
			return true
		}
	}
	return false
}
