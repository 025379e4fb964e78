package lispy

import "testing"

func Test_Env_define_get_set(t *testing.T) {
	in := NewInterp()
	x := in.Intern("x")

	root := NewEnv(nil)
	if _, ok := root.Get(x); ok {
		t.Fatal("x visible before Define")
	}
	if root.Set(x, IntVal(1)) {
		t.Fatal("Set must not implicitly define")
	}

	root.Define(x, IntVal(1))
	child := NewEnv(root)

	v, ok := child.Get(x)
	if !ok {
		t.Fatal("x not visible through the parent chain")
	}
	wantInt(t, v, 1)

	// Set reaches the outer slot; Define shadows it in the child.
	if !child.Set(x, IntVal(2)) {
		t.Fatal("Set should find the outer binding")
	}
	v, _ = root.Get(x)
	wantInt(t, v, 2)

	child.Define(x, IntVal(10))
	v, _ = child.Get(x)
	wantInt(t, v, 10)
	v, _ = root.Get(x)
	wantInt(t, v, 2)
}

func Test_Env_same_frame_redefine_wins(t *testing.T) {
	in := NewInterp()
	x := in.Intern("x")

	e := NewEnv(nil)
	e.Define(x, IntVal(1))
	e.Define(x, IntVal(2))

	v, _ := e.Get(x)
	wantInt(t, v, 2)

	// setvalue-style mutation hits the newest binding.
	e.Set(x, IntVal(3))
	v, _ = e.Get(x)
	wantInt(t, v, 3)
}
