package fault

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

// log is fault's own channel for "this must never happen" states raised
// from packages that have no logger of their own to hand Panicf — callers
// that already own a *logger.L (rpc/assets, ledgerstore) log through that
// instead and only reach for fault when they don't.
//
// Left nil until Initialise runs, matching the source's log.go: callers
// that never call Initialise still get internalCriticalf's fmt.Printf
// fallback rather than a nil-pointer panic while logging a panic.
var log *logger.L

// Initialise opens fault's logger channel. A node's startup calls this
// once; packages that only use Panicf/PanicIfError without Initialise
// still work via internalCriticalf's fallback.
func Initialise() {
	if log == nil {
		log = logger.New("fault")
	}
}

// Critical logs message, tagged with its caller's file and line.
func Critical(message string) {
	if _, file, line, ok := runtime.Caller(1); ok {
		internalCriticalf("(%q:%d) "+message, file, line)
	} else {
		internalCriticalf("%s", message)
	}
}

// Criticalf logs a formatted message, tagged with its caller's file and
// line.
func Criticalf(format string, arguments ...interface{}) {
	if _, file, line, ok := runtime.Caller(1); ok {
		a := make([]interface{}, 2, 2+len(arguments))
		a[0] = file
		a[1] = line
		a = append(a, arguments...)
		internalCriticalf("(%q:%d) "+format, a...)
	} else {
		internalCriticalf(format, arguments...)
	}
}

// Panicf logs a formatted message and then panics — the convention for a
// precondition a caller has already violated by the time the callee
// notices, where returning an error would just push the same "this must
// never happen" state one frame up.
func Panicf(format string, arguments ...interface{}) {
	if _, file, line, ok := runtime.Caller(1); ok {
		a := make([]interface{}, 2, 2+len(arguments))
		a[0] = file
		a[1] = line
		a = append(a, arguments...)
		internalCriticalf("(%q:%d) "+format, a...)
	} else {
		internalCriticalf(format, arguments...)
	}
	Panic("abort, see last messages in log file")
}

// Panic logs message then panics with it.
func Panic(message string) {
	internalCriticalf("%s", message)
	time.Sleep(100 * time.Millisecond)
	panic(message)
}

// PanicWithError logs message and err then panics with both.
func PanicWithError(message string, err error) {
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	internalCriticalf("%s", s)
	time.Sleep(100 * time.Millisecond)
	panic(s)
}

// PanicIfError is a no-op if err is nil, otherwise PanicWithError.
func PanicIfError(message string, err error) {
	if err == nil {
		return
	}
	PanicWithError(message, err)
}

func internalCriticalf(format string, arguments ...interface{}) {
	if log == nil {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	log.Criticalf(format, arguments...)
	log.Flush()
}
