package display

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// CloseOnSignal closes c once one of sigs arrives and then calls exit with
// 128 plus the signal number. The returned stop releases the handler; after
// it returns the signals get their default behavior back.
func CloseOnSignal(c io.Closer, exit func(code int), sigs ...os.Signal) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	done := make(chan struct{})
	go func() {
		select {
		case s := <-ch:
			_ = c.Close()
			exit(exitCode(s))
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}

func exitCode(s os.Signal) int {
	if n, ok := s.(syscall.Signal); ok {
		return 128 + int(n)
	}
	return 1
}
