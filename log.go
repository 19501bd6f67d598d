package galois

import (
	"fmt"
	"log"
	"os"
)

// Logger is the diagnostic seam the executor writes through. Infof
// carries the per-round trace lines; Fatalf is invoked only when
// an invariant (§7) is violated and the executor must halt.
type Logger interface {
	Infof(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

type defaultLogger struct{}

// DefaultLogger logs to the Go stdlib log package.
var DefaultLogger Logger = defaultLogger{}

func (defaultLogger) Infof(format string, args ...interface{}) {
	_ = log.Output(2, fmt.Sprintf(format, args...))
}

func (defaultLogger) Fatalf(format string, args ...interface{}) {
	_ = log.Output(2, fmt.Sprintf(format, args...))
	os.Exit(1)
}

type noopLogger struct{}

func (noopLogger) Infof(string, ...interface{}) {}

func (noopLogger) Fatalf(format string, args ...interface{}) {
	_ = log.Output(2, fmt.Sprintf(format, args...))
	os.Exit(1)
}
