package failure

type Severity int

// pipeline control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

// ClassifiedError is the error contract shared by every typed error in the
// module. Severity tells the caller whether retrying (or bypass-retrying)
// can ever help; it carries no other control-flow meaning.
type ClassifiedError interface {
	error
	Severity() Severity
}
