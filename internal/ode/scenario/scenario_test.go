package scenario

import "testing"

func TestDefault(t *testing.T) {
	s := Default()
	if s.Model != "pendulum" {
		t.Errorf("expected model pendulum, got %s", s.Model)
	}
	if s.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if len(s.Detectors) != 1 {
		t.Fatalf("expected 1 default detector, got %d", len(s.Detectors))
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default scenario should validate, got %v", err)
	}
}

func TestValidateUnknownKind(t *testing.T) {
	s := Default()
	s.Detectors[0].Kind = "bogus"
	if err := s.Validate(); err == nil {
		t.Error("expected error for unknown detector kind")
	}
}

func TestValidateUnknownAction(t *testing.T) {
	s := Default()
	s.Detectors[0].Action = "bogus"
	if err := s.Validate(); err == nil {
		t.Error("expected error for unknown detector action")
	}
}

func TestValidateNegativeComponent(t *testing.T) {
	s := Default()
	s.Detectors[0].Kind = "component_crossing"
	s.Detectors[0].Component = -1
	if err := s.Validate(); err == nil {
		t.Error("expected error for negative component index")
	}
}
