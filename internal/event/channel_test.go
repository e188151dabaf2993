package event

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestChannel_EmitOrder(t *testing.T) {
	var c Channel[string]
	var got []string

	c.On("greet", func(s string) { got = append(got, "first:"+s) })
	c.On("greet", func(s string) { got = append(got, "second:"+s) })
	c.On("other", func(s string) { got = append(got, "other:"+s) })

	c.Emit("greet", "hi")

	want := []string{"first:hi", "second:hi"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Emit() handlers mismatch (-want +got):\n%s", diff)
	}
}

func TestChannel_EmitWithoutHandlers(t *testing.T) {
	var c Channel[int]
	c.Emit("nothing", 1)

	if c.Len("nothing") != 0 {
		t.Errorf("Len() = %d, want 0", c.Len("nothing"))
	}
}

func TestChannel_Off(t *testing.T) {
	var c Channel[int]
	calls := 0

	off := c.On("tick", func(int) { calls++ })
	c.Emit("tick", 1)
	off()
	off()
	c.Emit("tick", 2)

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if c.Len("tick") != 0 {
		t.Errorf("Len() after off = %d, want 0", c.Len("tick"))
	}
}

func TestChannel_OffDuringDispatch(t *testing.T) {
	var c Channel[int]
	var got []string

	var offSecond func()
	c.On("tick", func(int) {
		got = append(got, "first")
		offSecond()
	})
	offSecond = c.On("tick", func(int) { got = append(got, "second") })

	// The dispatch in progress still reaches the second handler.
	c.Emit("tick", 1)
	c.Emit("tick", 2)

	want := []string{"first", "second", "first"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dispatch mismatch (-want +got):\n%s", diff)
	}
}

func TestChannel_Reset(t *testing.T) {
	var c Channel[int]
	c.On("a", func(int) {})
	c.On("b", func(int) {})
	c.Reset()

	if c.Len("a") != 0 || c.Len("b") != 0 {
		t.Errorf("Len() after Reset = (%d, %d), want (0, 0)", c.Len("a"), c.Len("b"))
	}
}
