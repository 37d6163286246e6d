package event

import (
	"errors"
	"testing"
)

type testEvent struct {
	N int
}

type otherEvent struct {
	S string
}

func TestBus_HooksRunInOrder(t *testing.T) {
	resetForTest()
	Register[testEvent]()

	var order []int
	RegisterHook(func(e *testEvent) error {
		order = append(order, 1)
		e.N++
		return nil
	})
	RegisterHook(func(e *testEvent) error {
		order = append(order, 2)
		e.N *= 10
		return nil
	})

	e := testEvent{N: 1}
	if err := Dispatch(&e); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got, want := e.N, 20; got != want {
		t.Fatalf("event mutated to %d, want %d", got, want)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("hook order=%v, want [1 2]", order)
	}
}

func TestBus_HookErrorAbortsChain(t *testing.T) {
	resetForTest()
	Register[testEvent]()

	boom := errors.New("boom")
	ran := false
	RegisterHook(func(e *testEvent) error { return boom })
	RegisterHook(func(e *testEvent) error { ran = true; return nil })

	err := Dispatch(&testEvent{})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want %v", err, boom)
	}
	if ran {
		t.Fatalf("second hook ran after error")
	}
}

func TestBus_UnregisteredDispatchPanics(t *testing.T) {
	resetForTest()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Dispatch(&testEvent{})
}

func TestBus_NestedDispatchIsQueued(t *testing.T) {
	resetForTest()
	Register[testEvent]()
	Register[otherEvent]()

	var order []string
	RegisterHook(func(e *testEvent) error {
		order = append(order, "outer-start")
		if err := Dispatch(&otherEvent{S: "inner"}); err != nil {
			return err
		}
		order = append(order, "outer-end")
		return nil
	})
	RegisterHook(func(e *otherEvent) error {
		order = append(order, "inner")
		return nil
	})

	if err := Dispatch(&testEvent{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	want := []string{"outer-start", "outer-end", "inner"}
	if len(order) != len(want) {
		t.Fatalf("order=%v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v, want %v", order, want)
		}
	}
}
