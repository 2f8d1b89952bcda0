package transcript

// Summary is the fixed per-host recap counter set.
type Summary struct {
	Ok          int
	Changed     int
	Unreachable int
	Failed      int
	Skipped     int
	Rescued     int
	Ignored     int
}

// Stats maps host names to their end-of-run summaries.
type Stats map[string]Summary

func (s Summary) payload() *Payload {
	return NewPayload().
		Set("ok", s.Ok).
		Set("changed", s.Changed).
		Set("unreachable", s.Unreachable).
		Set("failed", s.Failed).
		Set("skipped", s.Skipped).
		Set("rescued", s.Rescued).
		Set("ignored", s.Ignored)
}

// Style picks the recap line styling tier for a host. Unreachable
// outranks failed, which outranks changed, which outranks plain ok.
func (s Summary) Style() Style {
	if s.Unreachable > 0 {
		return StyleUnreachable
	}
	if s.Failed > 0 {
		return StyleError
	}
	if s.Changed > 0 {
		return StyleChanged
	}

	return StyleOk
}
