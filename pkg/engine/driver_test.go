// pkg/engine/driver_test.go
package engine

import "testing"

func TestManualDriver_Transitions(t *testing.T) {
	d := NewManualDriver()
	if d.Running() {
		t.Fatal("new driver should be stopped")
	}

	d.Stop()
	d.Start()
	d.Start()
	if !d.Running() {
		t.Error("driver should be running after Start")
	}
	d.Stop()
	d.Stop()
	if d.Running() {
		t.Error("driver should be stopped after Stop")
	}

	if d.Starts() != 1 || d.Stops() != 1 {
		t.Errorf("starts=%d stops=%d, expected 1 and 1", d.Starts(), d.Stops())
	}
}

func TestDriversImplementInterface(t *testing.T) {
	var _ Driver = NewManualDriver()
	var _ Driver = NewLoop(100)
}
