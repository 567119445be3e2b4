package history

// GroupScope closes a group with defer:
//
//	defer h.GroupScope("indent").End()
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a group and returns a handle that ends it.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// End closes the group. Calls after the first are no-ops.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}
