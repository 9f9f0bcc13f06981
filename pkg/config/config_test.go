package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndLookup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `disabled: [java]
pluginConf:
  pe:
    legacyFallback: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := c.Validate("pe", "java"); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Enabled("java") {
		t.Errorf("java should be disabled")
	}
	if !c.Enabled("pe") {
		t.Errorf("pe should be enabled")
	}
	got, err := c.PConfBool("pe", "legacyFallback", true)
	if err != nil || got {
		t.Errorf("PConfBool(pe) = %v, %v; want false, nil", got, err)
	}
	got, err = c.PConfBool("java", "legacyFallback", true)
	if err != nil || !got {
		t.Errorf("PConfBool(java) = %v, %v; want default true", got, err)
	}
}

func TestDefaults(t *testing.T) {
	var c *Config
	if !c.Enabled("pe") {
		t.Errorf("nil config must enable every resolver")
	}
	if v := c.PConf("pe", "legacyFallback", true); v != true {
		t.Errorf("PConf on nil config = %v; want default", v)
	}
	if err := c.Validate("pe"); err != nil {
		t.Errorf("Validate on nil config: %v", err)
	}

	empty, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if !empty.Enabled("java") {
		t.Errorf("empty config must enable every resolver")
	}
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown_disabled", "disabled: [elf]\n"},
		{"unknown_pluginconf", "pluginConf:\n  elf:\n    legacyFallback: true\n"},
		{"malformed", "disabled: {\n"},
		{"empty_name", "disabled: ['']\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			if err == nil {
				err = c.Validate("pe", "java")
			}
			if err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestPConfBoolWrongType(t *testing.T) {
	c, err := Parse([]byte("pluginConf:\n  pe:\n    legacyFallback: sometimes\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.PConfBool("pe", "legacyFallback", true); err == nil {
		t.Errorf("expected a type error")
	}
}
