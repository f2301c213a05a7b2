package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var (
	crashMu     sync.Mutex
	crashScreen tcell.Screen
	crashHooks  []func()

	// Replaced in tests
	crashOutput io.Writer = os.Stderr
	crashExit             = os.Exit
)

// SetCrashScreen registers the screen to restore before a crash report is printed
func SetCrashScreen(screen tcell.Screen) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashScreen = screen
}

// OnCrash registers a cleanup hook run before the terminal is restored (audio, sockets)
func OnCrash(fn func()) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashHooks = append(crashHooks, fn)
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	hooks := crashHooks
	screen := crashScreen
	crashScreen = nil
	crashHooks = nil
	crashMu.Unlock()

	for _, fn := range hooks {
		runHook(fn)
	}

	// Restore terminal to sane state before printing
	if screen != nil {
		screen.Fini()
	}

	fmt.Fprintf(crashOutput, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOutput, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	crashExit(1)
}

// runHook isolates a failing hook so the terminal is still restored
func runHook(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
