package resource

// Choice is one selectable option built from a mirrored entity.
type Choice struct {
	ID    string
	Label string
}

// Choices lists the mirrored entities as form options, in mirror order.
func (c *Controller[E, D]) Choices() []Choice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Choice, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, Choice{ID: c.def.ID(item), Label: c.def.label(item)})
	}
	return out
}

// Names maps every mirrored identifier to its label.
func (c *Controller[E, D]) Names() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.items))
	for _, item := range c.items {
		out[c.def.ID(item)] = c.def.label(item)
	}
	return out
}

// Len returns the number of mirrored entities.
func (c *Controller[E, D]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Resolve returns the labels of the referenced entities that exist in
// names. Dangling references are omitted.
func (r Refs) Resolve(names map[string]string) []string {
	out := make([]string, 0, len(r))
	for _, id := range r {
		if name, ok := names[string(id)]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Has reports whether id is referenced.
func (r Refs) Has(id string) bool {
	for _, ref := range r {
		if string(ref) == id {
			return true
		}
	}
	return false
}
