package state

import (
	"sync"
	"testing"
)

func TestFromEnvDebugFlag(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{" true ", true},
		{"false", false},
		{"", false},
		{"yes please", false},
		{"1", false},
		{"t", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(DebugEnv, tt.value)
			if got := FromEnv().Debug(); got != tt.want {
				t.Errorf("FromEnv().Debug() with %q = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestUpdateStatusLastWriteWins(t *testing.T) {
	s := New()
	if s.UpdateStatus() != UpdateUnknown {
		t.Fatalf("new state should have unknown update status, got %s", s.UpdateStatus())
	}

	s.SetUpdateAvailable(true)
	if s.UpdateStatus() != UpdateAvailable {
		t.Errorf("expected available, got %s", s.UpdateStatus())
	}

	s.SetUpdateAvailable(false)
	if s.UpdateStatus() != UpToDate {
		t.Errorf("expected up-to-date after overwrite, got %s", s.UpdateStatus())
	}
}

func TestSetUpdateAvailableIfUnsetKeepsFirst(t *testing.T) {
	s := New()
	if !s.SetUpdateAvailableIfUnset(true) {
		t.Fatal("first write should succeed")
	}
	if s.SetUpdateAvailableIfUnset(false) {
		t.Error("second write should be ignored")
	}
	if s.UpdateStatus() != UpdateAvailable {
		t.Errorf("expected first outcome to stick, got %s", s.UpdateStatus())
	}
}

func TestStateConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.SetDebug(i%2 == 0)
			s.SetUpdateAvailable(i%3 == 0)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Debug()
			_ = s.UpdateStatus()
		}()
	}
	wg.Wait()
}
