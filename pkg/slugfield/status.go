package slugfield

// Status is the availability indicator rendered next to the field.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusChecking  Status = "checking"
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
)

func (s Status) String() string { return string(s) }

// DeriveStatus computes the status from the state alone.
func DeriveStatus(s State) Status {
	switch {
	case s.Value == "" || s.Disabled:
		return StatusIdle
	case s.Failed:
		return StatusIdle
	case s.Phase == PhasePending || s.Value != s.Checked:
		return StatusChecking
	case s.Candidate == s.Value:
		return StatusAvailable
	default:
		return StatusTaken
	}
}
