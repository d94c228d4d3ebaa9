package game

import "testing"

func TestPowerMeter_Start(t *testing.T) {
	var p PowerMeter
	p.Start()
	if p.Value != 0 {
		t.Errorf("Value %v, want 0", p.Value)
	}
	if p.Direction != 1 {
		t.Errorf("Direction %d, want 1", p.Direction)
	}
	if !p.Active {
		t.Error("meter should be active")
	}
}

func TestPowerMeter_StepInactive(t *testing.T) {
	var p PowerMeter
	p.Step()
	if p.Value != 0 {
		t.Errorf("inactive meter moved to %v", p.Value)
	}
}

func TestPowerMeter_FlipsAtTop(t *testing.T) {
	var p PowerMeter
	p.Start()
	for i := 0; i < 50; i++ {
		p.Step()
	}
	if p.Value != PowerMax {
		t.Fatalf("Value %v after 50 steps, want %v", p.Value, PowerMax)
	}
	if p.Direction != -1 {
		t.Error("direction should flip to falling at the top")
	}
	p.Step()
	if p.Value != PowerMax-PowerStep {
		t.Errorf("Value %v after flip, want %v", p.Value, PowerMax-PowerStep)
	}
}

func TestPowerMeter_FlipsAtBottom(t *testing.T) {
	var p PowerMeter
	p.Start()
	for i := 0; i < 100; i++ {
		p.Step()
	}
	if p.Value != 0 {
		t.Fatalf("Value %v after full round trip, want 0", p.Value)
	}
	if p.Direction != 1 {
		t.Error("direction should flip to rising at the bottom")
	}
}

func TestPowerMeter_StaysInBounds(t *testing.T) {
	var p PowerMeter
	p.Start()
	for i := 0; i < 733; i++ {
		p.Step()
		if p.Value < 0 || p.Value > PowerMax {
			t.Fatalf("Value %v out of bounds at step %d", p.Value, i)
		}
	}
}

func TestPowerMeter_StopLocksValue(t *testing.T) {
	var p PowerMeter
	p.Start()
	for i := 0; i < 30; i++ {
		p.Step()
	}
	locked := p.Stop()
	if locked != 60 {
		t.Errorf("locked %v, want 60", locked)
	}
	if p.Active {
		t.Error("meter should be inactive after Stop")
	}
	p.Step()
	if p.Value != 60 {
		t.Errorf("Value moved to %v after Stop", p.Value)
	}
}
