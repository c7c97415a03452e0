package logging

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal returns true if the file is an interactive terminal (including Cygwin/MSYS ptys).
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
