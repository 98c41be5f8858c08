package iface

import (
	"errors"
	"io"
	"testing"
)

func TestScriptInterfaceReadsThenEOF(t *testing.T) {
	s := NewScriptInterface("one", "two")
	for _, want := range []string{"one", "two"} {
		got, err := s.ReadCommand("(debugger) ")
		if err != nil || got != want {
			t.Fatalf("ReadCommand = %q, %v; want %q", got, err, want)
		}
	}
	if _, err := s.ReadCommand("(debugger) "); !errors.Is(err, io.EOF) {
		t.Fatalf("exhausted read err = %v, want io.EOF", err)
	}
}

func TestScriptInterfaceFailureInjection(t *testing.T) {
	s := NewScriptInterface("never seen")
	s.FailReadsWith(ErrClosed)
	if _, err := s.ReadCommand("(debugger) "); !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
}

func TestScriptInterfaceRecordsWrites(t *testing.T) {
	s := NewScriptInterface()
	s.Print("hello %d\n", 1)
	s.ErrMsg("bad %s\n", "thing")
	if s.Printed() != "hello 1\n" {
		t.Errorf("Printed = %q", s.Printed())
	}
	if len(s.Errors()) != 1 || s.Errors()[0] != "bad thing\n" {
		t.Errorf("Errors = %q", s.Errors())
	}
}

func TestCommandQueueOrder(t *testing.T) {
	var q CommandQueue
	if _, ok := q.PopCommand(); ok {
		t.Fatal("empty queue popped")
	}
	q.PushCommand("a")
	q.PushCommand("b")
	if got, _ := q.PopCommand(); got != "a" {
		t.Fatalf("first pop = %q", got)
	}
	if got, _ := q.PopCommand(); got != "b" {
		t.Fatalf("second pop = %q", got)
	}
	if q.QueueLen() != 0 {
		t.Fatalf("QueueLen = %d", q.QueueLen())
	}
}
