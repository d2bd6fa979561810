package menu

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"golang.org/x/term"
)

// Screen clears the display between menu cycles.
type Screen interface {
	Clear(w io.Writer)
}

// TerminalScreen clears w only when it is an interactive terminal: ANSI
// sequences on POSIX systems, the cls builtin on Windows.
type TerminalScreen struct{}

// Clear implements Screen.
func (TerminalScreen) Clear(w io.Writer) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}
	if runtime.GOOS == "windows" {
		cmd := exec.Command("cmd", "/c", "cls")
		cmd.Stdout = f
		_ = cmd.Run()
		return
	}
	fmt.Fprint(f, "\033[H\033[2J")
}
