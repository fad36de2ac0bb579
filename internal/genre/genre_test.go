package genre

import "testing"

func TestBuiltinTemplates(t *testing.T) {
	all, err := All()
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("got %d templates, want 5", len(all))
	}

	for _, tmpl := range all {
		if tmpl.ID == "" || tmpl.Name == "" || tmpl.Tone == "" {
			t.Errorf("template %q has empty identity fields", tmpl.ID)
		}
		if len(tmpl.WorldRules) == 0 {
			t.Errorf("template %q has no world rules", tmpl.ID)
		}
		if len(tmpl.NamingConventions) == 0 {
			t.Errorf("template %q has no naming conventions", tmpl.ID)
		}
		if tmpl.StyleGuidance == "" {
			t.Errorf("template %q has no style guidance", tmpl.ID)
		}
	}
}

func TestGet(t *testing.T) {
	tmpl, err := Get("cyberpunk")
	if err != nil {
		t.Fatalf("Get(cyberpunk) error: %v", err)
	}
	if tmpl.Name != "Cyberpunk" {
		t.Errorf("Name = %q, want Cyberpunk", tmpl.Name)
	}
	if len(tmpl.WorldRules) != 5 {
		t.Errorf("got %d world rules, want 5", len(tmpl.WorldRules))
	}

	if _, err := Get("western"); err == nil {
		t.Error("Get(western) should fail")
	}
}

func TestIDsOrder(t *testing.T) {
	want := []string{"cyberpunk", "space_opera", "victorian_gothic", "post_apocalyptic", "mythic_fantasy"}
	got := IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
