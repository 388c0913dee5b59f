package lua

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/drake/arbor/event"
)

// bindCase represents a single test case from JSON
type bindCase struct {
	Name           string          `json:"name"`
	SetupLua       any             `json:"setup_lua"`
	Key            string          `json:"key"`
	Unhandled      bool            `json:"unhandled,omitempty"`
	ExpectedPushes []ScriptMessage `json:"expected_pushes,omitempty"`
	ExpectedPrints []string        `json:"expected_prints,omitempty"`
}

type testDataFile struct {
	Tests []bindCase `json:"tests"`
}

// setupTest creates an initialized engine and returns a cleanup function
func setupTest(t *testing.T) (*Engine, *MockHost, func()) {
	t.Helper()

	host := NewMockHost()
	engine := NewEngine(host, nil)
	if err := engine.Init(); err != nil {
		t.Fatal("Failed to initialize engine:", err)
	}
	return engine, host, engine.Close
}

func loadTestData(t *testing.T, filename string) testDataFile {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("Failed to read test data %s: %v", filename, err)
	}

	var testData testDataFile
	if err := json.Unmarshal(data, &testData); err != nil {
		t.Fatalf("Failed to parse test data %s: %v", filename, err)
	}
	return testData
}

// executeSetupLua handles both string and []string Lua setup code
func executeSetupLua(t *testing.T, engine *Engine, setup any) {
	t.Helper()
	switch lua := setup.(type) {
	case string:
		if err := engine.DoString("setup", lua); err != nil {
			t.Fatalf("Failed to execute setup Lua code: %v", err)
		}
	case []any:
		for _, cmd := range lua {
			if err := engine.DoString("setup", cmd.(string)); err != nil {
				t.Fatalf("Failed to execute setup Lua code: %v", err)
			}
		}
	}
}

func TestBinds(t *testing.T) {
	for _, tt := range loadTestData(t, "binds.json").Tests {
		t.Run(tt.Name, func(t *testing.T) {
			engine, host, cleanup := setupTest(t)
			defer cleanup()

			executeSetupLua(t, engine, tt.SetupLua)

			k, ok := event.ParseKey(tt.Key)
			if !ok {
				t.Fatalf("bad key %q in test data", tt.Key)
			}
			if handled := engine.HandleKey(k); handled == tt.Unhandled {
				t.Fatalf("HandleKey(%s) = %v", tt.Key, handled)
			}

			// JSON numbers decode as float64; pushes carry int.
			want := tt.ExpectedPushes
			for i := range want {
				for j, a := range want[i].Args {
					if f, ok := a.(float64); ok {
						want[i].Args[j] = int(f)
					}
				}
			}
			if diff := cmp.Diff(want, host.DrainPushed(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("pushes mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.ExpectedPrints, host.DrainPrintCalls(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("prints mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBindRejectsUnknownKey(t *testing.T) {
	engine, _, cleanup := setupTest(t)
	defer cleanup()

	err := engine.DoString("bad", "arbor.bind('hyper+z', function() end)")
	if err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Errorf("err = %v, want unknown key", err)
	}
	if len(engine.BoundKeys()) != 0 {
		t.Errorf("bound keys = %v", engine.BoundKeys())
	}
}

func TestTimers(t *testing.T) {
	engine, host, cleanup := setupTest(t)
	defer cleanup()

	executeSetupLua(t, engine, []any{
		"once = arbor.timer.after(0.5, function() arbor.print('once') end)",
		"tick = arbor.timer.every(2, function() arbor.print('tick') end)",
	})

	want := []struct {
		ID       int
		Duration time.Duration
		Repeat   bool
	}{
		{1, 500 * time.Millisecond, false},
		{2, 2 * time.Second, true},
	}
	if diff := cmp.Diff(want, host.ScheduledTimers); diff != "" {
		t.Fatalf("timers mismatch (-want +got):\n%s", diff)
	}

	engine.OnTimer(1, false)
	engine.OnTimer(1, false) // already fired
	engine.OnTimer(2, true)
	engine.OnTimer(2, true)
	if diff := cmp.Diff([]string{"once", "tick", "tick"}, host.DrainPrintCalls()); diff != "" {
		t.Errorf("prints mismatch (-want +got):\n%s", diff)
	}

	executeSetupLua(t, engine, "arbor.timer.cancel(tick)")
	engine.OnTimer(2, true)
	if got := host.DrainPrintCalls(); len(got) != 0 {
		t.Errorf("canceled timer ran: %v", got)
	}
	if diff := cmp.Diff([]int{2}, host.Canceled); diff != "" {
		t.Errorf("canceled mismatch (-want +got):\n%s", diff)
	}
	if engine.PendingTimers() != 0 {
		t.Errorf("pending = %d", engine.PendingTimers())
	}
}

func TestHooks(t *testing.T) {
	engine, host, cleanup := setupTest(t)
	defer cleanup()

	executeSetupLua(t, engine, []any{
		"arbor.hooks.on('ready', function() arbor.print('ready') end)",
		"arbor.hooks.on('loaded', function(path) arbor.print('loaded ' .. path) end)",
	})
	engine.CallHook("ready")
	engine.CallHook("loaded", "init.lua")
	engine.CallHook("nobody-listens")

	want := []string{"ready", "loaded init.lua"}
	if diff := cmp.Diff(want, host.DrainPrintCalls()); diff != "" {
		t.Errorf("prints mismatch (-want +got):\n%s", diff)
	}
}

func TestFailingErrorHookDoesNotRecurse(t *testing.T) {
	engine, host, cleanup := setupTest(t)
	defer cleanup()

	executeSetupLua(t, engine, []any{
		"arbor.hooks.on('error', function() arbor.print('in hook'); error('again') end)",
		"arbor.bind('e', function() error('first') end)",
	})
	engine.HandleKey(event.K('e'))
	if diff := cmp.Diff([]string{"in hook"}, host.DrainPrintCalls()); diff != "" {
		t.Errorf("prints mismatch (-want +got):\n%s", diff)
	}
}

func TestSystemFuncs(t *testing.T) {
	engine, host, cleanup := setupTest(t)
	defer cleanup()

	executeSetupLua(t, engine, []any{
		"arbor.message('Hello', 'world')",
		"arbor.reload()",
		"arbor.print(#arbor.windows())",
		"arbor.quit()",
	})
	if diff := cmp.Diff([]struct{ Title, Text string }{{"Hello", "world"}}, host.Boxes); diff != "" {
		t.Errorf("boxes mismatch (-want +got):\n%s", diff)
	}
	if host.ReloadCalls != 1 || !host.QuitCalled {
		t.Errorf("reload=%d quit=%v", host.ReloadCalls, host.QuitCalled)
	}
	if diff := cmp.Diff([]string{"2"}, host.DrainPrintCalls()); diff != "" {
		t.Errorf("prints mismatch (-want +got):\n%s", diff)
	}
}

func TestPushConvertsTables(t *testing.T) {
	engine, host, cleanup := setupTest(t)
	defer cleanup()

	executeSetupLua(t, engine, "arbor.push('add', {1, 2.5, 'x'}, {name = 'n'})")
	want := []ScriptMessage{{
		Name: "add",
		Args: []any{[]any{1, 2.5, "x"}, map[string]any{"name": "n"}},
	}}
	if diff := cmp.Diff(want, host.DrainPushed()); diff != "" {
		t.Errorf("pushes mismatch (-want +got):\n%s", diff)
	}
}

func TestChunksSurviveReinit(t *testing.T) {
	engine, _, cleanup := setupTest(t)
	defer cleanup()

	before := engine.CachedChunks()
	if before == 0 {
		t.Fatal("core scripts were not cached")
	}
	if err := engine.Init(); err != nil {
		t.Fatal(err)
	}
	if got := engine.CachedChunks(); got != before {
		t.Errorf("cache grew from %d to %d on re-init", before, got)
	}
}

func TestDoFile(t *testing.T) {
	engine, host, cleanup := setupTest(t)
	defer cleanup()

	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "helper.lua"), []byte("return { greet = function() arbor.print('hi') end }"), 0o644)
	main := filepath.Join(dir, "init.lua")
	os.WriteFile(main, []byte("require('helper').greet()"), 0o644)

	if err := engine.DoFile(main); err != nil {
		t.Fatalf("DoFile: %v", err)
	}
	if diff := cmp.Diff([]string{"hi"}, host.DrainPrintCalls()); diff != "" {
		t.Errorf("prints mismatch (-want +got):\n%s", diff)
	}
	if err := engine.DoFile(filepath.Join(dir, "missing.lua")); err == nil {
		t.Error("DoFile of a missing file succeeded")
	}
}
