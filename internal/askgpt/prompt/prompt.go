package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/askgpt/internal/askgpt"
	"go.uber.org/zap"
)

// File represents the structure of a TOML priming file
//
//	[[messages]]
//	role = "system"
//	content = "You are terse."
type File struct {
	Messages []askgpt.Message `toml:"messages"`
}

// LoadPriming returns the priming messages prepended to every request.
// jsonPath (a JSON array of messages) is used when it exists, otherwise
// tomlPath. A missing, unreadable or malformed file yields no messages.
func LoadPriming(jsonPath, tomlPath string, logger *zap.Logger) []askgpt.Message {
	if logger == nil {
		logger = zap.NewNop()
	}

	messages, err := loadJSON(jsonPath)
	if errors.Is(err, fs.ErrNotExist) {
		messages, err = loadTOML(tomlPath)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}
	if err != nil {
		logger.Warn("ignoring priming messages", zap.Error(err))
		return nil
	}

	logger.Debug("loaded priming messages", zap.Int("count", len(messages)))
	return messages
}

func loadJSON(path string) ([]askgpt.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var messages []askgpt.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return messages, nil
}

func loadTOML(path string) ([]askgpt.Message, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	var file File
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return file.Messages, nil
}
