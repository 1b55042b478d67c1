package common

// Status expresses whether the optimizer should keep iterating. Zero means
// continue, positive values are normal termination.
type Status int

const (
	Continue Status = iota
	IterationLimit
)

var statusStrings = map[Status]string{
	Continue:       "Continue",
	IterationLimit: "IterationLimit",
}

func (s Status) String() string {
	str, ok := statusStrings[s]
	if !ok {
		return "UnregisteredStatus"
	}
	return str
}
