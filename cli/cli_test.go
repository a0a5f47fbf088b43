package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/equex/cli/cmd"
	"github.com/ardnew/equex/lang"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "equex-cli-*")
	if err != nil {
		panic(err)
	}

	// Keep configuration and cache directories out of the real home.
	os.Setenv("HOME", dir)
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	os.Setenv(cmd.PathEnv, "")

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

// run invokes the CLI and returns what it wrote to standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	stdout := os.Stdout
	os.Stdout = w

	err = Run(t.Context(), func(code int) {
		t.Logf("exit(%d)", code)
	}, args...)

	w.Close()

	os.Stdout = stdout

	out, _ := io.ReadAll(r)

	return string(out), err
}

func TestRun_Exercise(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "zad.txt"), []byte(
		"Kwadrat o boku a=[4;4] cm ma pole P=?cm2 i obwód L=?cm.\n"+
			"---\n"+
			"P = a^2\n"+
			"L = 4*a\n",
	), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default command", []string{"--path", dir}, "P -> 16 cm2\nL -> 16 cm\n"},
		{"explicit file", []string{"run", filepath.Join(dir, "zad.txt")}, "P -> 16 cm2\nL -> 16 cm\n"},
		{"json", []string{"-P", dir, "run", "-o", "json", "zad.txt"}, `[
  {
    "name": "P",
    "value": 16,
    "label": "cm2"
  },
  {
    "name": "L",
    "value": 16,
    "label": "cm"
  }
]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Run(%q) error: %v", tt.args, err)
			}

			if got != tt.want {
				t.Errorf("Run(%q) output = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")

	if err := os.WriteFile(path, []byte("x=?\n---\nx = 1 / (2 - \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "run", path); !errors.Is(err, lang.ErrFormat) {
		t.Errorf("Run(bad exercise) error = %v, want format error", err)
	}

	if _, err := run(t, "run", filepath.Join(dir, "missing.txt")); !errors.Is(err, cmd.ErrOpenSource) {
		t.Errorf("Run(missing file) error = %v, want open error", err)
	}

	if _, err := run(t, "--bogus-flag"); err == nil {
		t.Error("Run(--bogus-flag) succeeded")
	}
}

func TestRun_Eval(t *testing.T) {
	got, err := run(t, "eval", "--postfix", "-v", "r=2", "2*(r+4)")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if want := "2 2 4 + *\n12\n"; got != want {
		t.Errorf("eval output = %q, want %q", got, want)
	}
}

func TestRun_InitAndConfig(t *testing.T) {
	confPath := configPath(baseConfig) + cmd.ConfigExt

	t.Cleanup(func() { os.Remove(confPath) })

	if _, err := run(t, "init"); err != nil {
		t.Fatalf("init error: %v", err)
	}

	data, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	for _, key := range []string{"log-level: warn", "log-format: text", "log-pretty: true"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("config missing %q:\n%s", key, data)
		}
	}

	if strings.Contains(string(data), "help") {
		t.Errorf("config contains help flag:\n%s", data)
	}

	if _, err := run(t, "init"); !errors.Is(err, cmd.ErrFileExists) {
		t.Errorf("second init error = %v, want file exists", err)
	}

	if _, err := run(t, "init", "--force"); err != nil {
		t.Errorf("init --force error: %v", err)
	}

	// Configuration values become flag defaults.
	if err := os.WriteFile(confPath, []byte("precision: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, "eval", "1/3")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if got != "0.33\n" {
		t.Errorf("eval with configured precision = %q, want %q", got, "0.33\n")
	}

	got, _ = run(t, "eval", "--precision", "4", "1/3")
	if got != "0.3333\n" {
		t.Errorf("flag did not override config: %q", got)
	}
}
