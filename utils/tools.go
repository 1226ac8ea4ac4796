package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

func LakeLogger(moduleName string) zerolog.Logger {
	writer := io.MultiWriter(os.Stdout)
	customConsoleWriter := zerolog.ConsoleWriter{Out: writer}
	customConsoleWriter.FormatCaller = func(i interface{}) string {
		return "\x1b[36m[LAKE]\x1b[0m"
	}

	l := zerolog.New(customConsoleWriter).With().Str("module", moduleName).Timestamp().Logger()
	return l
}

// AwaitEnoughMemory blocks while the allocated heap exceeds maxBytes,
// forcing a GC cycle between checks. Called between reader batches. A
// zero ceiling disables the check.
func AwaitEnoughMemory(name string, maxBytes uint64) {
	if maxBytes == 0 {
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	for m.Alloc > maxBytes {
		logger.Debug().
			Str("alloc", fmt.Sprintf("%v MiB", bToMb(m.Alloc))).
			Str("sys", fmt.Sprintf("%v MiB", bToMb(m.Sys))).
			Str("num-gc", fmt.Sprintf("%v", m.NumGC)).
			Msg(fmt.Sprintf("(%s) memory ceiling reached, waiting", name))

		runtime.GC()
		time.Sleep(time.Second)
		runtime.ReadMemStats(&m)
	}
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

// TryWithFixedBackoff runs try up to attempts times with a fixed delay
// between attempts. onError is invoked for every failed attempt. The last
// error is returned once the budget is exhausted.
func TryWithFixedBackoff(attempts int, delay time.Duration, try func() error, onError func(attempt int, err error)) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = try()
		if err == nil {
			return nil
		}
		onError(attempt, err)
		if attempt < attempts {
			time.Sleep(delay)
		}
	}
	return err
}

func Contains(slice []string, item string) bool {
	for _, elem := range slice {
		if elem == item {
			return true
		}
	}
	return false
}
