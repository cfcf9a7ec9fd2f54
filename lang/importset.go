package lang

// ImportSet collects the importable items registered during a single
// render, deduplicated by the adapter-supplied key. Rendering a template
// with K references to the same importable item registers it exactly
// once (spec §8, "import uniqueness"); iteration order is registration
// order, left to the adapter to re-sort or group in EmitImports.
type ImportSet struct {
	order []string
	items map[string]any
}

func NewImportSet() *ImportSet {
	return &ImportSet{items: make(map[string]any)}
}

// Add registers item under key if it isn't already present. Returns
// whether this call actually added a new entry.
func (s *ImportSet) Add(key string, item any) bool {
	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = item
	s.order = append(s.order, key)
	return true
}

func (s *ImportSet) Len() int {
	return len(s.order)
}

// Each calls fn once per registered item, in registration order.
func (s *ImportSet) Each(fn func(key string, item any)) {
	for _, k := range s.order {
		fn(k, s.items[k])
	}
}

// Merge adds every item from other into s under its original key,
// preserving other's registration order and skipping keys s already
// holds — used to fold a nested quasiquote's own import set into its
// parent's when the nested render is spliced into the parent stream.
func (s *ImportSet) Merge(other *ImportSet) {
	other.Each(func(key string, item any) {
		s.Add(key, item)
	})
}
