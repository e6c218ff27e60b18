package prefabs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedArchetypesValidate(t *testing.T) {
	entries, err := fs.Glob(PrefabsFS, "*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	traps := map[string]bool{"arrow_trap.yaml": true, "arrow_trap_triple.yaml": true, "arrow_trap_quintuple.yaml": true}
	for _, name := range entries {
		if name == "player.yaml" || traps[name] {
			continue
		}
		t.Run(name, func(t *testing.T) {
			spec, err := LoadArchetype(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Health <= 0 || len(spec.Attacks) == 0 {
				t.Fatalf("archetype %s has no health or attacks", spec.Name)
			}
			if err := spec.Validate(); err != nil {
				t.Fatalf("validate: %v", err)
			}
		})
	}
}

func TestUnknownArchetype(t *testing.T) {
	_, err := LoadArchetype("dragon.yaml")
	if !errors.Is(err, ErrUnknownArchetype) {
		t.Fatalf("expected ErrUnknownArchetype, got %v", err)
	}
}

func TestValidateReportsUnknownKind(t *testing.T) {
	spec := &ArchetypeSpec{
		Name:    "odd",
		Attacks: []AttackSpec{{Name: "ok", Kind: "melee"}},
		Boss:    &BossSpec{Attacks: []AttackSpec{{Name: "laser", Kind: "laser"}}},
	}
	if err := spec.Validate(); !errors.Is(err, ErrUnknownAttackKind) {
		t.Fatalf("expected ErrUnknownAttackKind, got %v", err)
	}
}

func TestEncountersReferenceKnownPrefabs(t *testing.T) {
	entries, err := fs.Glob(PrefabsFS, "encounters/*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Fatal("no embedded encounters")
	}
	for _, name := range entries {
		t.Run(name, func(t *testing.T) {
			enc, err := LoadEncounterSpec(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			ids := map[string]bool{}
			for _, p := range enc.Enemies {
				if _, err := LoadArchetype(p.Prefab); err != nil {
					t.Fatalf("enemy %s: %v", p.Prefab, err)
				}
				if p.ID != "" {
					ids[p.ID] = true
				}
			}
			for _, p := range enc.Traps {
				if _, err := LoadTrapSpec(p.Prefab); err != nil {
					t.Fatalf("trap %s: %v", p.Prefab, err)
				}
				if p.Linked != "" && !ids[p.Linked] {
					t.Fatalf("trap linked to unknown id %q", p.Linked)
				}
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatal(err)
	}
	if spec.Color == nil || spec.Color.Color == nil {
		t.Fatal("player color not parsed")
	}
	r, g, b, a := spec.Color.RGBA()
	if r>>8 != 0x4d || g>>8 != 0xa6 || b>>8 != 0xff || a>>8 != 0xff {
		t.Fatalf("unexpected color %x %x %x %x", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestScriptPathsResolve(t *testing.T) {
	for _, name := range []string{"wizard_select.tengo", "scripts/wizard_select.tengo", "prefabs/scripts/wizard_select.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestRelPaths(t *testing.T) {
	tests := []struct {
		name, prefab, script string
	}{
		{name: "slime.yaml", prefab: "slime.yaml", script: "scripts/slime.yaml"},
		{name: "prefabs/encounters/intro.yaml", prefab: "encounters/intro.yaml", script: "scripts/encounters/intro.yaml"},
		{name: "./prefabs/scripts/../slime.yaml", prefab: "slime.yaml", script: "scripts/slime.yaml"},
		{name: "prefabs/scripts/wizard_select.tengo", prefab: "scripts/wizard_select.tengo", script: "scripts/wizard_select.tengo"},
		{name: "", prefab: "", script: ""},
	}
	for _, tc := range tests {
		if got := relPath(tc.name); got != tc.prefab {
			t.Fatalf("relPath(%q) = %q, want %q", tc.name, got, tc.prefab)
		}
		if got := scriptPath(tc.name); got != tc.script {
			t.Fatalf("scriptPath(%q) = %q, want %q", tc.name, got, tc.script)
		}
	}
	if _, err := Load(""); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("empty name: %v", err)
	}
}

func TestDiskScriptOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	const body = "choice := \"bite\"\n"
	if err := os.WriteFile(filepath.Join(dir, "scripts", "wizard_select.tengo"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	old := Dir
	Dir = dir
	defer func() { Dir = old }()

	data, err := LoadScript("wizard_select.tengo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != body {
		t.Fatalf("script = %q, want the disk copy", data)
	}
	embedded, err := ScriptsFS.ReadFile("scripts/wizard_select.tengo")
	if err != nil || string(embedded) == body {
		t.Fatalf("embedded copy should be untouched: %v", err)
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "slime.yaml"), []byte("name: slime\nhealth: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := Dir
	Dir = dir
	defer func() { Dir = old }()

	spec, err := LoadArchetype("prefabs/slime.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Health != 7 {
		t.Fatalf("health = %d, want the disk copy's 7", spec.Health)
	}
	wolf, err := LoadArchetype("werewolf.yaml")
	if err != nil || wolf.Health <= 0 {
		t.Fatalf("embedded fallback failed: %+v %v", wolf, err)
	}
}
