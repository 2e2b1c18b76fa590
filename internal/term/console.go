package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console is the shared terminal handle. Everything that reads input, the
// surface loop and the modal dialogs alike, goes through the one scanner.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// ReadLine reads one trimmed line; ok is false at EOF.
func (c *Console) ReadLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// Confirm asks a yes/no question. Anything but an explicit yes is a no.
func (c *Console) Confirm(message string) bool {
	fmt.Fprintf(c.out, "%s [y/N] ", message)
	answer, ok := c.ReadLine()
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// Prompt asks for a value. An EOF counts as cancelled.
func (c *Console) Prompt(message string) (string, bool) {
	fmt.Fprintf(c.out, "%s ", message)
	return c.ReadLine()
}

// Alert prints a blocking alert.
func (c *Console) Alert(message string) {
	fmt.Fprintf(c.out, "\n[!] %s\n", message)
}
