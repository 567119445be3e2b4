package vim

// MaxCount caps typed counts so that "99999999x" cannot stall the editor.
const MaxCount = 10000

// CountState tracks count prefix accumulation.
type CountState struct {
	// Value is the accumulated count value.
	Value int

	// Active indicates if a count is being accumulated.
	Active bool
}

// Reset clears the count state.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// AccumulateDigit adds a digit to the count.
// Returns true if the digit was accepted. A leading '0' is rejected
// because it is the line-start motion, not a count.
func (c *CountState) AccumulateDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	digit := int(r - '0')
	if !c.Active && digit == 0 {
		return false
	}
	c.Active = true
	c.Value = min(c.Value*10+digit, MaxCount)
	return true
}

// Get returns the effective count (1 if no count was specified).
func (c *CountState) Get() int {
	if c.Value <= 0 {
		return 1
	}
	return c.Value
}

// Raw returns the typed count, or 0 when none was typed. Motions such as
// G treat "no count" differently from a count of one.
func (c *CountState) Raw() int {
	if !c.Active {
		return 0
	}
	return c.Value
}

// CombineCounts multiplies a pre-operator count and a post-operator count,
// so "2d3w" deletes six words. Zero means "not given". The result is zero
// only when neither count was given and is capped at MaxCount.
func CombineCounts(count1, count2 int) int {
	if count1 <= 0 && count2 <= 0 {
		return 0
	}
	count1 = max(count1, 1)
	count2 = max(count2, 1)
	if count1 > MaxCount/count2 {
		return MaxCount
	}
	return count1 * count2
}
