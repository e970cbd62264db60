package askgpt

import (
	"errors"
	"fmt"
)

// APIKeyURL is where users can create an API key.
const APIKeyURL = "https://platform.openai.com/account/api-keys"

// ErrEmptyPrompt is returned when no usable prompt text was given.
var ErrEmptyPrompt = errors.New("You didn't provide a prompt. Please provide a prompt as the arguments to this program.\n\nFor example:\n\naskgpt Hello, how are you?\n")

// MissingAPIKeyError is returned when the API key file does not exist.
type MissingAPIKeyError struct {
	Path string
}

func (e *MissingAPIKeyError) Error() string {
	return fmt.Sprintf("No API key found. Please put your API key in a file located at:\n\n%s\n\nYou can get your API key from:\n\n%s\n", e.Path, APIKeyURL)
}
