package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/longkey1/askgpt/internal/askgpt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "single word", args: []string{"Hi"}, want: "Hi"},
		{name: "joined with spaces", args: []string{"Hello,", "how", "are", "you?"}, want: "Hello, how are you?"},
		{name: "trimmed", args: []string{"  padded ", "words  "}, want: "padded  words"},
		{name: "dash arguments are text", args: []string{"--help", "-v"}, want: "--help -v"},
		{name: "no args", args: nil, wantErr: true},
		{name: "whitespace only", args: []string{"", "  "}, wantErr: true},
		{name: "tabs and newlines", args: []string{"\t", "\n"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, askgpt.ErrEmptyPrompt) {
				t.Errorf("ParseArgs() error = %v, want ErrEmptyPrompt", err)
			}
			if got != tt.want {
				t.Errorf("ParseArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadPriming(t *testing.T) {
	terse := []askgpt.Message{{Role: askgpt.RoleSystem, Content: "You are terse."}}

	tests := []struct {
		name string
		json string
		toml string
		want []askgpt.Message
	}{
		{
			name: "no files",
			want: nil,
		},
		{
			name: "json array",
			json: `[{"role":"system","content":"You are terse."}]`,
			want: terse,
		},
		{
			name: "toml messages",
			toml: "[[messages]]\nrole = \"system\"\ncontent = \"You are terse.\"\n",
			want: terse,
		},
		{
			name: "json wins over toml",
			json: `[{"role":"system","content":"You are terse."}]`,
			toml: "[[messages]]\nrole = \"system\"\ncontent = \"ignored\"\n",
			want: terse,
		},
		{
			name: "malformed json is ignored",
			json: `[{"role":"system",`,
			toml: "[[messages]]\nrole = \"system\"\ncontent = \"not a fallback\"\n",
			want: nil,
		},
		{
			name: "malformed toml is ignored",
			toml: "[[messages]\nrole = ",
			want: nil,
		},
		{
			name: "empty json array",
			json: `[]`,
			want: []askgpt.Message{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			jsonPath := filepath.Join(dir, "prompt.json")
			tomlPath := filepath.Join(dir, "prompt.toml")
			if tt.json != "" {
				require.NoError(t, os.WriteFile(jsonPath, []byte(tt.json), 0644))
			}
			if tt.toml != "" {
				require.NoError(t, os.WriteFile(tomlPath, []byte(tt.toml), 0644))
			}

			got := LoadPriming(jsonPath, tomlPath, zaptest.NewLogger(t))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadPriming_UnreadableJSON(t *testing.T) {
	dir := t.TempDir()
	// a directory where the file should be cannot be read as a file
	jsonPath := filepath.Join(dir, "prompt.json")
	require.NoError(t, os.Mkdir(jsonPath, 0755))

	got := LoadPriming(jsonPath, filepath.Join(dir, "prompt.toml"), nil)
	assert.Nil(t, got)
}
