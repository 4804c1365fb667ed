package su

import "testing"

func TestFixed(t *testing.T) {
	if got := Fixed(2, 64, 4); got != 512 {
		t.Fatalf("Fixed(2, 64, 4) = %v, want 512", got)
	}
	if got := Fixed(0, 64, 4); got != 0 {
		t.Fatalf("Fixed(0, 64, 4) = %v, want 0", got)
	}
}

func TestUtilization(t *testing.T) {
	if got := Utilization(50, 64, 1); got != 32 {
		t.Fatalf("Utilization(50, 64, 1) = %v, want 32", got)
	}
	if got := UsedCores(50, 64); got != 32 {
		t.Fatalf("UsedCores(50, 64) = %v, want 32", got)
	}
	// Multithreaded tasks report over 100%
	if got := UsedCores(850, 64); got != 544 {
		t.Fatalf("UsedCores(850, 64) = %v, want 544", got)
	}
}

func TestCharge(t *testing.T) {
	if got := Charge(128, 2, 1); got != 256 {
		t.Fatalf("Charge(128, 2, 1) = %v, want 256", got)
	}
	if got := Charge(128, 0.5, 2); got != 128 {
		t.Fatalf("Charge(128, 0.5, 2) = %v, want 128", got)
	}
	if got := Charge(128, 0, 1); got != 0 {
		t.Fatalf("Charge(128, 0, 1) = %v, want 0", got)
	}
}
