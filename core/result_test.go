package core

import "testing"

func TestResultStates(t *testing.T) {
	done := Ok(42)
	if !done.IsDone() || done.IsCancelled() {
		t.Errorf("Ok: IsDone=%v IsCancelled=%v", done.IsDone(), done.IsCancelled())
	}
	if done.Value != 42 {
		t.Errorf("Ok value = %d", done.Value)
	}

	failed := Fail[int]("boom")
	if failed.IsDone() || failed.IsCancelled() {
		t.Errorf("Fail: IsDone=%v IsCancelled=%v", failed.IsDone(), failed.IsCancelled())
	}
	if failed.Message() != "boom" {
		t.Errorf("Fail message = %q", failed.Message())
	}

	cancelled := Cancel[int]()
	if cancelled.IsDone() || !cancelled.IsCancelled() {
		t.Errorf("Cancel: IsDone=%v IsCancelled=%v", cancelled.IsDone(), cancelled.IsCancelled())
	}
}
