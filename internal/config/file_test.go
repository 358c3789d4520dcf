package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilePath(t *testing.T) {
	home := useConfigHome(t)

	got, err := filePath()
	if err != nil {
		t.Fatalf("filePath() unexpected error: %v", err)
	}
	if want := filepath.Join(home, "go-subtitle", "config"); got != want {
		t.Errorf("filePath() = %q, want %q", got, want)
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    map[string]string
		wantErr error
	}{
		{
			name:    "comments and blanks",
			content: "# saved by subtitle\n\n  output-dir =  ~/subs  \ngranularity=segment\n",
			want:    map[string]string{"output-dir": "~/subs", "granularity": "segment"},
		},
		{
			name:    "value with equals",
			content: "output-dir=/data/a=b\n",
			want:    map[string]string{"output-dir": "/data/a=b"},
		},
		{
			name:    "empty value",
			content: "granularity=\n",
			want:    map[string]string{"granularity": ""},
		},
		{
			name:    "missing equals",
			content: "granularity word\n",
			wantErr: ErrInvalidSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := filepath.Join(t.TempDir(), "config")
			if err := os.WriteFile(p, []byte(tt.content), 0644); err != nil {
				t.Fatalf("setup: %v", err)
			}

			got, err := readFile(p)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("readFile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("readFile() unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("readFile() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("readFile()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestReadFile_LineNumber(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(p, []byte("# one\ngranularity=word\nbroken\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	_, err := readFile(p)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("readFile() error = %v, want mention of line 3", err)
	}
}

func TestSave_CreatesSortedFile(t *testing.T) {
	home := useConfigHome(t)

	if err := Save(KeyOutputDir, "/srv/subs"); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if err := Save(KeyGranularity, "segment"); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, appName, "config"))
	if err != nil {
		t.Fatalf("os.ReadFile() unexpected error: %v", err)
	}
	if want := "granularity=segment\noutput-dir=/srv/subs\n"; string(data) != want {
		t.Errorf("config file = %q, want %q", data, want)
	}
}

func TestSave_OverwritesKeyAndDropsComments(t *testing.T) {
	home := useConfigHome(t)
	p := seedConfig(t, home, "# mine\ngranularity=word\noutput-dir=/tmp\n")

	if err := Save(KeyGranularity, "sentence"); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("os.ReadFile() unexpected error: %v", err)
	}
	if want := "granularity=sentence\noutput-dir=/tmp\n"; string(data) != want {
		t.Errorf("config file = %q, want %q", data, want)
	}
}

func TestSave_RejectsUnstorable(t *testing.T) {
	useConfigHome(t)

	tests := []struct {
		key, value string
		wantErr    error
	}{
		{"", "x", ErrInvalidKey},
		{"a=b", "x", ErrInvalidKey},
		{"multi\nline", "x", ErrInvalidKey},
		{KeyOutputDir, "/tmp\ngranularity=word", ErrInvalidValue},
	}
	for _, tt := range tests {
		if err := Save(tt.key, tt.value); !errors.Is(err, tt.wantErr) {
			t.Errorf("Save(%q, %q) error = %v, want %v", tt.key, tt.value, err, tt.wantErr)
		}
	}
}

func TestGetAndList(t *testing.T) {
	home := useConfigHome(t)

	values, err := List()
	if err != nil || len(values) != 0 {
		t.Fatalf("List() without file = %v, %v, want empty map", values, err)
	}
	if got, err := Get(KeyGranularity); err != nil || got != "" {
		t.Fatalf("Get() without file = %q, %v, want empty", got, err)
	}

	seedConfig(t, home, "granularity=sentence\n")
	if got, err := Get(KeyGranularity); err != nil || got != "sentence" {
		t.Errorf("Get() = %q, %v, want sentence", got, err)
	}
	if got, err := Get(KeyOutputDir); err != nil || got != "" {
		t.Errorf("Get(unset) = %q, %v, want empty", got, err)
	}
}
