package system

// Status is the process-wide health state owned by the System.
type Status int

// Status values. The zero value is Uninitialized; Init is the only
// transition out of it.
const (
	StatusUninitialized Status = iota
	StatusOK
	StatusError
	StatusBusy
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusBusy:
		return "busy"
	}
	return "invalid"
}
