package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// readerConfirmer asks for y/n on out and reads the answer from in.
type readerConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (c readerConfirmer) Confirm(ctx context.Context, title, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintln(c.out, title)
	return confirm(c.in, c.out, message), nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
