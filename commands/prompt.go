package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/logging"
)

var stdin io.Reader = os.Stdin

func interactive() bool {
	return logging.IsTerminal(os.Stdin)
}

// prompt displays the text and reads a line of input. The second return value is false if the
// user entered nothing, which cancels the operation.
func prompt(in io.Reader, out io.Writer, text string, existing string) (string, bool, error) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %v\n", text)

	if existing != "" {
		fmt.Fprintf(out, "  The existing entry is: %v\n", existing)
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, "  > ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, err
	}

	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return "", false, nil
	}

	return line, true, nil
}
