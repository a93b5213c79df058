package unresolved

import "sync"

// Pool canonicalizes values by equality so that identical subtrees
// share storage (spec.md §4.1). Every kind it handles is comparable
// once reduced to a string key; callers supply that key alongside the
// value being interned.
type Pool interface {
	// InternString returns the canonical copy of s.
	InternString(s string) string
	// InternAttribute returns the canonical *Attribute equal to a, by
	// key. Callers compute key from a's value (see Attribute.Key).
	InternAttribute(key string, a *Attribute) *Attribute
	// InternTypeReference returns the canonical TypeReference equal to
	// ref, by key (see TypeReferenceKey).
	InternTypeReference(key string, ref TypeReference) TypeReference
	// InternConstant returns the canonical *ConstantValue equal to c.
	InternConstant(key string, c *ConstantValue) *ConstantValue
	// InternStrings returns a canonical, shared []string equal to ss.
	InternStrings(key string, ss []string) []string
}

// syncPool is the real, concurrency-safe interning pool used during
// eager loading. It is mutated only by the single goroutine driving an
// eager load (spec.md §5); its RWMutex exists so that an already-frozen
// assembly's readers (which may call back into shared singletons) never
// race with a concurrent eager load of a different assembly sharing the
// same pool instance.
type syncPool struct {
	mu         sync.RWMutex
	strings    map[string]string
	attributes map[string]*Attribute
	typeRefs   map[string]TypeReference
	constants  map[string]*ConstantValue
	strSlices  map[string][]string
}

// NewPool creates a new, empty interning pool.
func NewPool() Pool {
	return &syncPool{
		strings:    make(map[string]string, 256),
		attributes: make(map[string]*Attribute, 64),
		typeRefs:   make(map[string]TypeReference, 256),
		constants:  make(map[string]*ConstantValue, 32),
		strSlices:  make(map[string][]string, 32),
	}
}

func (p *syncPool) InternString(s string) string {
	p.mu.RLock()
	if v, ok := p.strings[s]; ok {
		p.mu.RUnlock()
		return v
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.strings[s]; ok {
		return v
	}
	p.strings[s] = s
	return s
}

func (p *syncPool) InternAttribute(key string, a *Attribute) *Attribute {
	p.mu.RLock()
	if v, ok := p.attributes[key]; ok {
		p.mu.RUnlock()
		return v
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.attributes[key]; ok {
		return v
	}
	p.attributes[key] = a
	return a
}

func (p *syncPool) InternTypeReference(key string, ref TypeReference) TypeReference {
	p.mu.RLock()
	if v, ok := p.typeRefs[key]; ok {
		p.mu.RUnlock()
		return v
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.typeRefs[key]; ok {
		return v
	}
	p.typeRefs[key] = ref
	return ref
}

func (p *syncPool) InternConstant(key string, c *ConstantValue) *ConstantValue {
	p.mu.RLock()
	if v, ok := p.constants[key]; ok {
		p.mu.RUnlock()
		return v
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.constants[key]; ok {
		return v
	}
	p.constants[key] = c
	return c
}

func (p *syncPool) InternStrings(key string, ss []string) []string {
	p.mu.RLock()
	if v, ok := p.strSlices[key]; ok {
		p.mu.RUnlock()
		return v
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.strSlices[key]; ok {
		return v
	}
	p.strSlices[key] = ss
	return ss
}

// dummyPool returns every value unchanged. spec.md §4.1: "used by the
// lazy proxy because the real pool is not safe for concurrent writers."
type dummyPool struct{}

// NewDummyPool creates the no-op pool used during lazy materialization.
func NewDummyPool() Pool { return dummyPool{} }

func (dummyPool) InternString(s string) string                               { return s }
func (dummyPool) InternAttribute(_ string, a *Attribute) *Attribute          { return a }
func (dummyPool) InternTypeReference(_ string, r TypeReference) TypeReference { return r }
func (dummyPool) InternConstant(_ string, c *ConstantValue) *ConstantValue   { return c }
func (dummyPool) InternStrings(_ string, ss []string) []string              { return ss }
