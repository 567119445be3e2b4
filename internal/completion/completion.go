package completion

// Completion is the state of command-line completion: the matches for
// the text that started it and which match is selected.
type Completion struct {
	resolver Resolver
	active   bool
	prefix   string
	matches  []string
	selected int
}

// New creates an inactive completion backed by r.
func New(r Resolver) *Completion {
	return &Completion{resolver: r}
}

// Start activates completion for prefix and selects the first match.
func (c *Completion) Start(prefix string) {
	c.active = true
	c.prefix = prefix
	c.matches = c.resolver.Suggest(prefix)
	c.selected = 0
}

// Active reports whether completion has been started and not finished.
func (c *Completion) Active() bool { return c.active }

// HasMatches reports whether the active completion found anything.
func (c *Completion) HasMatches() bool { return c.active && len(c.matches) > 0 }

// Prefix returns the text completion was started with.
func (c *Completion) Prefix() string { return c.prefix }

// Matches returns the current matches.
func (c *Completion) Matches() []string { return c.matches }

// Selected returns the selected match.
func (c *Completion) Selected() (string, bool) {
	if !c.HasMatches() {
		return "", false
	}
	return c.matches[c.selected], true
}

// Next selects the following match, wrapping around.
func (c *Completion) Next() {
	if n := len(c.matches); n > 0 {
		c.selected = (c.selected + 1) % n
	}
}

// Prev selects the preceding match, wrapping around.
func (c *Completion) Prev() {
	if n := len(c.matches); n > 0 {
		c.selected = (c.selected + n - 1) % n
	}
}

// Accept returns the selected match and ends completion.
func (c *Completion) Accept() (string, bool) {
	s, ok := c.Selected()
	c.Cancel()
	return s, ok
}

// Cancel ends completion without choosing a match.
func (c *Completion) Cancel() {
	c.active = false
	c.prefix = ""
	c.matches = nil
	c.selected = 0
}

// Visible returns at most limit matches around the selection, for a popup,
// and the selection's index within that window.
func (c *Completion) Visible(limit int) ([]string, int) {
	n := len(c.matches)
	if n == 0 || limit <= 0 {
		return nil, 0
	}
	start := 0
	if n > limit {
		half := limit / 2
		switch {
		case c.selected < half:
		case c.selected >= n-half:
			start = n - limit
		default:
			start = c.selected - half
		}
	}
	end := min(start+limit, n)
	return c.matches[start:end], c.selected - start
}
