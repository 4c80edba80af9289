package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/lifequest/engine"
	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/engine/save"
)

// testSetup returns a CLI over a fresh engine with scripted input.
func testSetup(t *testing.T, input string) (*CLI, *bytes.Buffer, *save.MemoryStore) {
	t.Helper()
	store := &save.MemoryStore{}
	eng := engine.New(catalog.Default(), engine.Options{
		Store: store,
		Seed:  7,
		Now:   func() time.Time { return time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC) },
	})
	var out bytes.Buffer
	c := New(eng)
	c.In = strings.NewReader(input)
	c.Out = &out
	return c, &out, store
}

func run(t *testing.T, c *CLI) {
	t.Helper()
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestCLI_StartsWithTitle(t *testing.T) {
	c, out, _ := testSetup(t, "")
	run(t, c)
	if !strings.Contains(out.String(), catalog.BaseTitle) {
		t.Errorf("expected title in output, got:\n%s", out.String())
	}
}

func TestCLI_Quit(t *testing.T) {
	c, out, _ := testSetup(t, "/quit\nstatus\n")
	run(t, c)
	if !strings.Contains(out.String(), "[Goodbye.]") {
		t.Errorf("missing goodbye:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Coins:") {
		t.Error("commands after /quit should not run")
	}
}

func TestCLI_GameCommand(t *testing.T) {
	c, out, _ := testSetup(t, "quest faith\nquests\n")
	run(t, c)
	if len(c.Engine.Player.Quests) != 1 {
		t.Fatalf("quests = %d", len(c.Engine.Player.Quests))
	}
	if !strings.Contains(out.String(), "Spiritual Duty") {
		t.Errorf("quest not listed:\n%s", out.String())
	}
}

func TestCLI_Again(t *testing.T) {
	c, out, _ := testSetup(t, "quest faith\ng\n")
	run(t, c)
	if !strings.Contains(out.String(), "A quest named 'Spiritual Duty' is already active.") {
		t.Errorf("repeat did not reach the engine:\n%s", out.String())
	}
}

func TestCLI_AgainWithNothing(t *testing.T) {
	c, out, _ := testSetup(t, "again\n")
	run(t, c)
	if !strings.Contains(out.String(), "Nothing to repeat.") {
		t.Errorf("got:\n%s", out.String())
	}
}

func TestCLI_CommentsSkipped(t *testing.T) {
	c, out, _ := testSetup(t, "# quest faith\n")
	run(t, c)
	if len(c.Engine.Player.Quests) != 0 {
		t.Error("comment line was executed")
	}
	if strings.Contains(out.String(), "I don't know how") {
		t.Error("comment reached the engine")
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	c, out, store := testSetup(t, "/save\n/load\n")
	c.Engine.Player.Coins = 77
	run(t, c)
	if store.Data == nil {
		t.Fatal("nothing saved")
	}
	if c.Engine.Player.Coins != 77 {
		t.Errorf("coins after reload = %d", c.Engine.Player.Coins)
	}
	for _, want := range []string{"[Progress saved.]", "[Progress reloaded.]", "Coins: 77"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out, _ := testSetup(t, "/trace\nquest faith\n")
	run(t, c)
	if !c.Trace {
		t.Error("trace should be on")
	}
	if !strings.Contains(out.String(), "[[trace] Events:") {
		t.Errorf("no trace output:\n%s", out.String())
	}
}

func TestCLI_UnknownMeta(t *testing.T) {
	c, out, _ := testSetup(t, "/dance\n")
	run(t, c)
	if !strings.Contains(out.String(), "Unknown command: /dance") {
		t.Errorf("got:\n%s", out.String())
	}
}

func TestCLI_Help(t *testing.T) {
	c, out, _ := testSetup(t, "/help\n")
	run(t, c)
	for _, want := range []string{"/save", "/trace", "again (g)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out, _ := testSetup(t, "status\n")
	c.EchoInput = true
	run(t, c)
	if !strings.Contains(out.String(), "> status\n") {
		t.Errorf("input not echoed:\n%s", out.String())
	}
}
