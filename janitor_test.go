package authcore

import (
	"context"
	"testing"
	"time"
)

func TestStartJanitorRejectsBadSchedule(t *testing.T) {
	svc, _ := newServiceTest(t, aliceDirectory())
	svc.cfg.SweepSchedule = "not a schedule"

	if _, err := svc.StartJanitor(nil); err == nil {
		t.Fatal("expected schedule parse error")
	}
}

func TestJanitorSweepsExpiredSessions(t *testing.T) {
	svc, clock := newServiceTest(t, aliceDirectory())
	svc.cfg.SweepSchedule = "@every 10ms"

	if _, err := svc.Login(context.Background(), "alice", "pw1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	clock.Advance(2 * time.Hour)

	j, err := svc.StartJanitor(nil)
	if err != nil {
		t.Fatalf("start janitor: %v", err)
	}
	defer j.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for svc.ActiveSessions() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("janitor never swept, %d sessions remain", svc.ActiveSessions())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestJanitorStopIsSafe(t *testing.T) {
	svc, _ := newServiceTest(t, aliceDirectory())

	j, err := svc.StartJanitor(nil)
	if err != nil {
		t.Fatalf("start janitor: %v", err)
	}
	j.Stop()

	var nilJanitor *Janitor
	nilJanitor.Stop()
}
