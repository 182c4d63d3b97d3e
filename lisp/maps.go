package lisp

func isMapKey(k *LVal) bool {
	return k.Type == LString || k.Type == LKeyword
}

func (m *LVal) mapIndex(k *LVal) int {
	for i := 0; i < len(m.Cells); i += 2 {
		key := m.Cells[i]
		if key.Type == k.Type && key.Str == k.Str {
			return i
		}
	}
	return -1
}

func (m *LVal) mapGet(k *LVal) (*LVal, bool) {
	i := m.mapIndex(k)
	if i < 0 {
		return nil, false
	}
	return m.Cells[i+1], true
}

// mapSet mutates m.  It must only be called on maps under construction.
func (m *LVal) mapSet(k, v *LVal) {
	i := m.mapIndex(k)
	if i >= 0 {
		m.Cells[i+1] = v
		return
	}
	m.Cells = append(m.Cells, k, v)
}

// MapGet returns the value associated with k in m.  If k is not present in m
// MapGet returns nil and false.
func (m *LVal) MapGet(k *LVal) (*LVal, bool) {
	if m.Type != LMap || !isMapKey(k) {
		return nil, false
	}
	return m.mapGet(k)
}

// MapAssoc returns a copy of m with additional key-value pairs.  The pairs
// are given as an alternating sequence of keys and values.  An LError is
// returned if kvs has odd length or contains an invalid key.
func (m *LVal) MapAssoc(kvs ...*LVal) *LVal {
	if len(kvs)%2 != 0 {
		return ErrorConditionf(CondRuntime, "missing map value")
	}
	cp := m.Copy()
	cp.Meta = nil
	for i := 0; i < len(kvs); i += 2 {
		if !isMapKey(kvs[i]) {
			return ErrorConditionf(CondTypeMismatch, "invalid map key type: %v", kvs[i].Type)
		}
		cp.mapSet(kvs[i], kvs[i+1])
	}
	return cp
}

// MapDissoc returns a copy of m without the given keys.
func (m *LVal) MapDissoc(keys ...*LVal) *LVal {
	cp := &LVal{Type: LMap}
	for i := 0; i < len(m.Cells); i += 2 {
		drop := false
		for _, k := range keys {
			if k.Type == m.Cells[i].Type && k.Str == m.Cells[i].Str {
				drop = true
				break
			}
		}
		if !drop {
			cp.Cells = append(cp.Cells, m.Cells[i], m.Cells[i+1])
		}
	}
	return cp
}

// MapKeys returns a list of the keys in m.
func (m *LVal) MapKeys() *LVal {
	keys := make([]*LVal, 0, m.Len())
	for i := 0; i < len(m.Cells); i += 2 {
		keys = append(keys, m.Cells[i])
	}
	return List(keys...)
}

// MapVals returns a list of the values in m.
func (m *LVal) MapVals() *LVal {
	vals := make([]*LVal, 0, m.Len())
	for i := 1; i < len(m.Cells); i += 2 {
		vals = append(vals, m.Cells[i])
	}
	return List(vals...)
}
