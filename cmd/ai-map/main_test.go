package main

import "testing"

func TestBuildAppCommands(t *testing.T) {
	app := buildApp()
	want := map[string]bool{"serve": false, "render": false, "browse": false, "validate": false}
	for _, cmd := range app.Commands {
		if _, ok := want[cmd.Name]; ok {
			want[cmd.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("command %q missing", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	app := buildApp()
	names := map[string]bool{}
	for _, flag := range app.Flags {
		for _, name := range flag.Names() {
			names[name] = true
		}
	}
	if !names["config"] || !names["data"] {
		t.Fatalf("global flags incomplete: %v", names)
	}
}
