package core

import (
	"testing"

	"framelink/protocol"
)

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	var called bool
	handler := func(msg *protocol.Message) (protocol.Fields, error) {
		called = true
		return nil, nil
	}

	if err := registry.Register("test_command", "test_result", handler); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	cmd, ok := registry.Lookup("test_command")
	if !ok {
		t.Fatal("Failed to retrieve registered command")
	}
	if cmd.Name != "test_command" || cmd.Result != "test_result" {
		t.Errorf("Unexpected command: %+v", cmd)
	}

	if _, err := cmd.Handler(&protocol.Message{Type: "test_command"}); err != nil {
		t.Errorf("Handler failed: %v", err)
	}
	if !called {
		t.Error("Command handler was not called")
	}

	if _, ok := registry.Lookup("missing"); ok {
		t.Error("Expected lookup of unknown command to fail")
	}
}

func TestCommandRegistryRejects(t *testing.T) {
	registry := NewCommandRegistry()
	noop := func(msg *protocol.Message) (protocol.Fields, error) { return nil, nil }

	if err := registry.Register("a", "a_result", noop); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register("a", "other", noop); err != ErrDuplicateCommand {
		t.Errorf("Expected ErrDuplicateCommand, got %v", err)
	}
	if err := registry.Register("", "x", noop); err != ErrInvalidCommand {
		t.Errorf("Expected ErrInvalidCommand for empty name, got %v", err)
	}
	if err := registry.Register("b", "b_result", nil); err != ErrInvalidCommand {
		t.Errorf("Expected ErrInvalidCommand for nil handler, got %v", err)
	}

	registry.Freeze()
	if !registry.Frozen() {
		t.Error("Registry should report frozen")
	}
	if err := registry.Register("c", "c_result", noop); err != ErrRegistryFrozen {
		t.Errorf("Expected ErrRegistryFrozen, got %v", err)
	}
	if registry.Count() != 1 {
		t.Errorf("Expected 1 command, got %d", registry.Count())
	}
}

func TestCommandRegistryNames(t *testing.T) {
	registry := NewCommandRegistry()
	noop := func(msg *protocol.Message) (protocol.Fields, error) { return nil, nil }

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := registry.Register(name, name+"_result", noop); err != nil {
			t.Fatalf("Register %s failed: %v", name, err)
		}
	}

	names := registry.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
