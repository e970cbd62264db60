// Package prompt turns command-line arguments and priming files into the
// messages sent with each request.
package prompt

import (
	"strings"

	"github.com/longkey1/askgpt/internal/askgpt"
)

// ParseArgs joins the arguments with single spaces and trims the result.
// It returns askgpt.ErrEmptyPrompt when nothing but whitespace is left.
func ParseArgs(args []string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", askgpt.ErrEmptyPrompt
	}
	return text, nil
}
