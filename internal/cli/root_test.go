package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	swerr "github.com/matzehuels/spiderweb/pkg/errors"
	webio "github.com/matzehuels/spiderweb/pkg/io"
	"github.com/matzehuels/spiderweb/pkg/web"
)

const sample = `A: B D
B: C E
C: F H
D: E
E: H
F: I
H: I
island: reef
`

// testEnv isolates config and cache directories and holds a sample web file.
type testEnv struct {
	t    *testing.T
	dir  string
	file string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	env := &testEnv{t: t, dir: dir}
	env.file = env.write("web.txt", sample)
	return env
}

func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatal(err)
	}
	return path
}

// run executes the root command with args and returns its stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"route", "cut", "dump", "stats", "pick", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"verbose", "config", "workers"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestRouteCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("route", env.file, "D", "I")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	for _, want := range []string{"D", "E", "H", "I", "3 hops", "fresh"} {
		if !strings.Contains(out, want) {
			t.Errorf("route output missing %q:\n%s", want, out)
		}
	}
}

func TestRouteCommandRepeatUsesCache(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("route", env.file, "A", "I", "--repeat", "2")
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if strings.Count(out, "4 hops") != 2 {
		t.Errorf("expected two 4-hop routes:\n%s", out)
	}
	if !strings.Contains(out, "fresh") || !strings.Contains(out, "4 cached") {
		t.Errorf("second run should follow cached hints:\n%s", out)
	}
}

func TestRouteCommandErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		code swerr.Code
	}{
		{"unknown source", []string{"route", env.file, "nope", "I"}, swerr.ErrCodeUnknownNode},
		{"unknown destination", []string{"route", env.file, "A", "nope"}, swerr.ErrCodeUnknownNode},
		{"disconnected", []string{"route", env.file, "A", "reef"}, swerr.ErrCodeDisconnected},
		{"missing file", []string{"route", filepath.Join(env.dir, "missing.txt"), "A", "B"}, swerr.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := swerr.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestCutCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("cut", env.file, "E", "H", "--from", "D", "--to", "I")
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	if !strings.Contains(out, "5 hops") {
		t.Errorf("route after cut should take 5 hops:\n%s", out)
	}
	if !strings.Contains(out, "2 components") {
		t.Errorf("cut output should report components:\n%s", out)
	}
}

func TestCutCommandProduct(t *testing.T) {
	env := newTestEnv(t)
	chain := env.write("chain.txt", "a: b\nb: c\nc: d\n")

	out, err := env.run("cut", chain, "b", "c", "a", "d")
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	if !strings.Contains(out, "2 × 2 = 4") {
		t.Errorf("cut output should print the product:\n%s", out)
	}
	if !strings.Contains(out, "No link between a and d") {
		t.Errorf("cut output should warn about a missing link:\n%s", out)
	}
}

func TestCutCommandArgs(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		code swerr.Code
	}{
		{"no pairs", []string{"cut", env.file}, swerr.ErrCodeInvalidEdgeRemoval},
		{"odd names", []string{"cut", env.file, "A", "B", "C"}, swerr.ErrCodeInvalidEdgeRemoval},
		{"unknown node", []string{"cut", env.file, "A", "nope"}, swerr.ErrCodeUnknownNode},
		{"from without to", []string{"cut", env.file, "A", "B", "--from", "A"}, swerr.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(tt.args...)
			if got := swerr.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestDumpCommandText(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("dump", env.file)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	w, err := webio.ReadAdjacency(strings.NewReader(out))
	if err != nil {
		t.Fatalf("dump output does not parse: %v\n%s", err, out)
	}
	if w.NodeCount() != 10 || w.EdgeCount() != 11 {
		t.Errorf("dump round trip = %d nodes, %d links; want 10, 11", w.NodeCount(), w.EdgeCount())
	}
}

func TestDumpCommandJSONFile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "web.json")

	out, err := env.run("dump", env.file, "--format", "json", "-o", path)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("dump should print the output path:\n%s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Nodes []json.RawMessage `json:"nodes"`
		Links []json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Nodes) != 10 || len(doc.Links) != 11 {
		t.Errorf("json dump = %d nodes, %d links; want 10, 11", len(doc.Nodes), len(doc.Links))
	}
}

func TestDumpCommandDOT(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("dump", env.file, "-f", "dot", "--detailed")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.HasPrefix(out, "graph G {") {
		t.Errorf("dot output should start with graph header:\n%s", out)
	}
	if !strings.Contains(out, `"A" -- "B"`) {
		t.Errorf("dot output missing A -- B:\n%s", out)
	}
}

func TestDumpCommandErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("dump", env.file, "-f", "gif")
	if got := swerr.GetCode(err); got != swerr.ErrCodeUnsupported {
		t.Errorf("unknown format code = %s, want %s", got, swerr.ErrCodeUnsupported)
	}

	_, err = env.run("dump", env.file, "-f", "png")
	if got := swerr.GetCode(err); got != swerr.ErrCodeInvalidInput {
		t.Errorf("png to stdout code = %s, want %s", got, swerr.ErrCodeInvalidInput)
	}
}

func TestDumpCommandConfigFormat(t *testing.T) {
	env := newTestEnv(t)
	env.write("config/spiderweb/config.toml", "[render]\nformat = \"dot\"\n")

	out, err := env.run("dump", env.file)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.HasPrefix(out, "graph G {") {
		t.Errorf("config format should select dot:\n%s", out)
	}

	out, err = env.run("dump", env.file, "-f", "text")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.HasPrefix(out, "graph") {
		t.Errorf("--format should override the config file:\n%s", out)
	}
}

func TestStatsCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("stats", env.file)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := map[string]string{"nodes": "10", "links": "11", "components": "2", "largest": "8"}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		if v, ok := want[fields[0]]; ok {
			if fields[1] != v {
				t.Errorf("%s = %s, want %s", fields[0], fields[1], v)
			}
			delete(want, fields[0])
		}
	}
	if len(want) > 0 {
		t.Errorf("stats output missing %v:\n%s", want, out)
	}
}

func TestStatsCommandTraffic(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("stats", env.file, "--traffic", "--top", "3")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Link", "Up", "Down", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("traffic table missing %q:\n%s", want, out)
		}
	}
}

func TestConfigFlagRequiresFile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("--config", filepath.Join(env.dir, "missing.toml"), "stats", env.file)
	if got := swerr.GetCode(err); got != swerr.ErrCodeFileNotFound {
		t.Errorf("code = %s, want %s", got, swerr.ErrCodeFileNotFound)
	}
}

func TestWorkersPrecedence(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if got := c.effectiveWorkers(); got != 0 {
		t.Errorf("default workers = %d, want 0", got)
	}

	c.Config.Workers = 4
	if got := c.effectiveWorkers(); got != 4 {
		t.Errorf("config workers = %d, want 4", got)
	}

	c.workers = 2
	if got := c.effectiveWorkers(); got != 2 {
		t.Errorf("flag workers = %d, want 2", got)
	}

	env := newTestEnv(t)
	w, err := c.loadWeb(env.file)
	if err != nil {
		t.Fatalf("loadWeb: %v", err)
	}
	if w.Workers() != 2 {
		t.Errorf("web workers = %d, want 2", w.Workers())
	}
}

func TestVerboseOverridesConfigLevel(t *testing.T) {
	env := newTestEnv(t)
	env.write("config/spiderweb/config.toml", "log_level = \"error\"\n")

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"-v", "stats", env.file})
	root.SetOut(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
	if !strings.Contains(logs.String(), "loaded web") {
		t.Errorf("debug log missing:\n%s", logs.String())
	}
}

func TestCompleteNodes(t *testing.T) {
	env := newTestEnv(t)
	cmd := New(io.Discard, LogInfo).routeCommand()

	names, _ := completeNodes(cmd, []string{env.file}, "is")
	if len(names) != 1 || names[0] != "island" {
		t.Errorf("completeNodes(is) = %v, want [island]", names)
	}

	names, _ = completeNodes(cmd, nil, "")
	if len(names) != 0 {
		t.Errorf("completeNodes without file = %v, want none", names)
	}
}

func TestRouteOnceDisconnectedWrapsSentinel(t *testing.T) {
	w, err := webio.ReadAdjacency(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	err = routeOnce(context.Background(), io.Discard, w, "A", "island")
	if !swerr.Is(err, swerr.ErrCodeDisconnected) {
		t.Fatalf("routeOnce = %v, want DISCONNECTED", err)
	}
	if !errors.Is(err, web.ErrDisconnected) {
		t.Error("error should wrap web.ErrDisconnected")
	}
}
