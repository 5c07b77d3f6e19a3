package cmd

import (
	"strings"
	"testing"
)

func TestSelectCommand_TogglePersists(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.run(t, "select", "1", "LRP-CICA")
	if err != nil {
		t.Fatalf("select error = %v", err)
	}
	if !strings.Contains(out, "Selected Foaming Facial Cleanser") || !strings.Contains(out, "2 product(s) selected") {
		t.Errorf("unexpected select output:\n%s", out)
	}

	out, err = env.run(t, "selected")
	if err != nil {
		t.Fatalf("selected error = %v", err)
	}
	first := strings.Index(out, "Foaming Facial Cleanser")
	second := strings.Index(out, "Cicaplast Baume B5")
	if first < 0 || second < 0 || first > second {
		t.Errorf("selected should list both in selection order:\n%s", out)
	}

	out, err = env.run(t, "select", "1")
	if err != nil {
		t.Fatalf("select error = %v", err)
	}
	if !strings.Contains(out, "Deselected Foaming Facial Cleanser") || !strings.Contains(out, "1 product(s) selected") {
		t.Errorf("second toggle should deselect:\n%s", out)
	}
}

func TestSelectCommand_UnknownProduct(t *testing.T) {
	env := newTestEnv(t, "")
	if _, err := env.run(t, "select", "999"); err == nil {
		t.Error("expected error for an unknown product")
	}
}

func TestSelectCommand_RequiresArgs(t *testing.T) {
	env := newTestEnv(t, "")
	if _, err := env.run(t, "select"); err == nil {
		t.Error("expected error without ids")
	}
}

func TestRemoveCommand(t *testing.T) {
	env := newTestEnv(t, "")
	if _, err := env.run(t, "select", "2", "5"); err != nil {
		t.Fatal(err)
	}

	out, err := env.run(t, "remove", "2")
	if err != nil {
		t.Fatalf("remove error = %v", err)
	}
	if !strings.Contains(out, "1 product(s) selected") {
		t.Errorf("unexpected remove output:\n%s", out)
	}

	if _, err := env.run(t, "remove", "2"); err == nil {
		t.Error("removing an unselected product should fail")
	}
}

func TestSelectedCommand_Empty(t *testing.T) {
	env := newTestEnv(t, "")
	out, err := env.run(t, "selected")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No products selected.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestClearCommand(t *testing.T) {
	env := newTestEnv(t, "")
	if _, err := env.run(t, "select", "1", "2"); err != nil {
		t.Fatal(err)
	}

	if _, err := env.run(t, "clear"); err == nil {
		t.Error("clear without --yes should fail")
	}
	out, _ := env.run(t, "selected")
	if strings.Contains(out, "No products selected.") {
		t.Error("clear without --yes must not clear the selection")
	}

	if _, err := env.run(t, "clear", "--yes"); err != nil {
		t.Fatalf("clear --yes error = %v", err)
	}
	out, _ = env.run(t, "selected")
	if !strings.Contains(out, "No products selected.") {
		t.Errorf("selection should be empty after clear:\n%s", out)
	}
}
