package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add milk 2", TypeAdd},
		{"remove 3", TypeRemove},
		{"rm 1", TypeRemove},
		{"/cart Milk", TypeCart},
		{"uncart Milk", TypeUncart},
		{"check Eggs", TypeCart},
		{"clear", TypeClear},
		{"reset shopping", TypeReset},
		{"show shopping", TypeShow},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddQuantity(t *testing.T) {
	cases := []struct {
		in   string
		name string
		qty  int
	}{
		{"add milk", "milk", 1},
		{"add oat milk 3", "oat milk", 3},
		{"add eggs x12", "eggs", 12},
		{"add 7up", "7up", 1},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Add.Name != tc.name || cmd.Add.Quantity != tc.qty {
			t.Fatalf("parse %q = %+v, want %s x%d", tc.in, *cmd.Add, tc.name, tc.qty)
		}
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{"add", "add milk 0", "remove", "remove zero", "remove 0", "cart", "reset", "show", "show calendar"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseKeepsCartNameAndPassword(t *testing.T) {
	cmd, err := Parse("/cart  Oat  Milk ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Cart.Name != "Oat  Milk" {
		t.Fatalf("unexpected cart name: %q", cmd.Cart.Name)
	}
	cmd, err = Parse("reset Shopping")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Reset.Password != "Shopping" {
		t.Fatalf("password must keep its case, got %q", cmd.Reset.Password)
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
	_, err := Parse("/unknown do x")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseItemSpec(t *testing.T) {
	name, qty, err := ParseItemSpec("  bananas   6 ")
	if err != nil || name != "bananas" || qty != 6 {
		t.Fatalf("unexpected spec: %q %d %v", name, qty, err)
	}
	if _, _, err := ParseItemSpec("   "); err == nil {
		t.Fatal("expected error for blank spec")
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add bread 2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Name != "bread" || a.Quantity != 2 {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteClearAndUncart(t *testing.T) {
	var got []string
	handlers := Handlers{
		Clear:  func() (Result, error) { got = append(got, "clear"); return Result{}, nil },
		Uncart: func(a CartArgs) (Result, error) { got = append(got, "uncart:"+a.Name); return Result{}, nil },
	}
	for _, in := range []string{"clear", "uncart Milk"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := Execute(cmd, handlers); err != nil {
			t.Fatalf("execute %q: %v", in, err)
		}
	}
	if len(got) != 2 || got[0] != "clear" || got[1] != "uncart:Milk" {
		t.Fatalf("unexpected dispatch order: %v", got)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show list")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
