package peers

import (
	"errors"
	"fmt"
)

// ErrMissingField matches every *MissingFieldError with errors.Is.
var ErrMissingField = errors.New("missing field")

// MissingFieldError is returned when a field required to build a chart is
// absent from the subject's metrics. It is fatal to that one chart only.
type MissingFieldError struct {
	Subject string
	Field   Field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("subject %q has no value for %q", e.Subject, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// require returns the subject's value for f, or a *MissingFieldError.
func require(subject Record, f Field) (Value, error) {
	v := subject.Get(f)
	if f.Categorical() || v.IsAbsent() {
		return Absent, &MissingFieldError{Subject: subject.Name, Field: f}
	}
	return v, nil
}
