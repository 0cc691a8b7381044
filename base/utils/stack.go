package utils

import (
	"bytes"
	"fmt"
	"runtime"
)

// Stack formats the calling goroutine's stack trace, skipping the first
// `skip` frames.
func Stack(skip int) []byte {
	buf := new(bytes.Buffer)
	for i := skip; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fmt.Fprintf(buf, "%s:%d (0x%x)\n", file, line, pc)
		if fn := runtime.FuncForPC(pc); fn != nil {
			fmt.Fprintf(buf, "\t%s\n", fn.Name())
		}
	}
	return buf.Bytes()
}
