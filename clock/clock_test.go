package clock

import "testing"

func TestSysclkConversions(t *testing.T) {
	if got := SysclkUs(1); got != 72 {
		t.Errorf("SysclkUs(1) = %d, want 72", got)
	}
	if got := SysclkMs(1); got != 72_000 {
		t.Errorf("SysclkMs(1) = %d, want 72000", got)
	}
	if got := SysclkNs(1000); got != 72 {
		t.Errorf("SysclkNs(1000) = %d, want 72", got)
	}
}

func TestStkConversions(t *testing.T) {
	if got := StkMs(200); got != 200_000 {
		t.Errorf("StkMs(200) = %d, want 200000", got)
	}
	if got := StkSysclk(1); got != 72 {
		t.Errorf("StkSysclk(1) = %d, want 72", got)
	}
}
