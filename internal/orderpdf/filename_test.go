package orderpdf

import (
	"regexp"
	"testing"
	"time"
)

func TestFilenameDeterministic(t *testing.T) {
	date := time.Date(2025, 3, 14, 15, 4, 5, 0, time.UTC)

	a := Filename(12345, "María Pérez-Ríos", date)
	b := Filename(12345, "María Pérez-Ríos", date)
	if a != b {
		t.Fatalf("filename not deterministic: %q vs %q", a, b)
	}
	if a != "Pedido_12345_Mara_PrezRos_14-03-2025.pdf" {
		t.Errorf("unexpected filename %q", a)
	}
}

func TestFilenameSanitization(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	name := Filename(7, "  José   O'Neil  (papá) ", date)
	want := regexp.MustCompile(`^Pedido_7_[A-Za-z0-9_]*_02-01-2025\.pdf$`)
	if !want.MatchString(name) {
		t.Errorf("filename %q contains characters outside [A-Za-z0-9_]", name)
	}
}

func TestFilenameEmptyName(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := Filename(1, "", date); got != "Pedido_1__02-01-2025.pdf" {
		t.Errorf("unexpected filename %q", got)
	}
}
