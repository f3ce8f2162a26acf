package util

import (
	"errors"
	"reflect"
	"testing"
)

func TestAssert(t *testing.T) {
	Assert(true, "never raised")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected an error value, got %T", r)
		}
		var internal *InternalError
		if !errors.As(err, &internal) {
			t.Fatalf("expected *InternalError, got %T", r)
		}
		if internal.Message != "slot 3 out of range" {
			t.Errorf("unexpected message %q", internal.Message)
		}
		if err.Error() != "internal error: slot 3 out of range" {
			t.Errorf("unexpected error text %q", err.Error())
		}
	}()
	Assert(false, "slot %d out of range", 3)
}

func TestReverse(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
	}{
		{"empty", []int{}, []int{}},
		{"single", []int{1}, []int{1}},
		{"even", []int{1, 2, 3, 4}, []int{4, 3, 2, 1}},
		{"odd", []int{1, 2, 3}, []int{3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reverse(tt.input)
			if !reflect.DeepEqual(tt.input, tt.expected) {
				t.Errorf("got %v, want %v", tt.input, tt.expected)
			}
		})
	}
}
