package cli

import (
	"fmt"

	reactive "github.com/giovanni1707/DOMHelpers-Reactive-sub000"
)

// Trace collects what a scenario observed, in order.
type Trace struct {
	lines []string
}

func (t *Trace) Logf(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

func (t *Trace) Lines() []string { return t.lines }

// Scenario is a scripted run against a fresh runtime.
type Scenario struct {
	Name        string
	Description string
	Run         func(tr *Trace)
}

// Scenarios lists the built-in scenarios by name.
var Scenarios = []Scenario{
	{
		Name:        "a",
		Description: "a single write and a batched double write",
		Run:         scenarioWrites,
	},
	{
		Name:        "b",
		Description: "instrumented sequence mutations",
		Run:         scenarioSequence,
	},
	{
		Name:        "c",
		Description: "lazy computed recomputation",
		Run:         scenarioComputed,
	},
	{
		Name:        "batch",
		Description: "coalesced writes to several cells",
		Run:         scenarioBatch,
	},
	{
		Name:        "scope",
		Description: "scope teardown order and writes after destroy",
		Run:         scenarioScope,
	},
}

// FindScenario returns the scenario called name.
func FindScenario(name string) (Scenario, bool) {
	for _, s := range Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

func scenarioWrites(tr *Trace) {
	c := reactive.NewCell(1)
	reactive.NewEffect(func() {
		tr.Logf("effect c=%d", c.Read())
	})

	tr.Logf("write 2")
	c.Write(2)

	tr.Logf("batch write 2, 3")
	reactive.Batch(func() {
		c.Write(2)
		c.Write(3)
	})
}

func scenarioSequence(tr *Trace) {
	items := reactive.NewCell([]int{1, 2, 3})
	list := reactive.Instrument(items, reactive.OpAll)

	reactive.NewEffect(func() {
		tr.Logf("effect items=%v", items.Read())
	})

	n := list.Push(4)
	tr.Logf("push(4) -> %d", n)

	last, ok := list.Pop()
	tr.Logf("pop() -> %d %t", last, ok)

	removed := list.Splice(0, 1)
	tr.Logf("splice(0, 1) -> %v", removed)
}

func scenarioComputed(tr *Trace) {
	c := reactive.NewCell(1)

	recomputes := 0
	doubled := reactive.NewComputed(func() int {
		recomputes++
		return c.Read() * 2
	})

	v := doubled.Read()
	tr.Logf("read doubled=%d recomputes=%d", v, recomputes)

	c.Write(5)
	tr.Logf("write c=5 recomputes=%d", recomputes)

	v = doubled.Read()
	tr.Logf("read doubled=%d recomputes=%d", v, recomputes)
}

func scenarioBatch(tr *Trace) {
	first := reactive.NewCell("Ada")
	last := reactive.NewCell("Lovelace")

	reactive.NewEffect(func() {
		tr.Logf("effect name=%s %s", first.Read(), last.Read())
	})

	tr.Logf("batch write first, last")
	reactive.Batch(func() {
		first.Write("Grace")
		last.Write("Hopper")
		first.Write("Grace")
	})

	tr.Logf("nested batch")
	reactive.Batch(func() {
		first.Write("Alan")
		reactive.Batch(func() {
			last.Write("Turing")
		})
		tr.Logf("inner batch closed")
	})
}

func scenarioScope(tr *Trace) {
	s := reactive.NewScope()

	var c *reactive.Cell[int]
	s.Run(func() {
		c = reactive.NewCell(1)
		reactive.NewEffect(func() {
			tr.Logf("effect c=%d", c.Read())
		}, reactive.WithCleanup(func() {
			tr.Logf("effect destroyed")
		}))
	})

	s.RegisterTeardown(func() { tr.Logf("teardown 1") })
	s.RegisterTeardown(func() { tr.Logf("teardown 2") })
	s.OnDestroy(func() { tr.Logf("on destroy c=%d", c.Read()) })

	tr.Logf("destroy")
	s.Destroy()

	tr.Logf("write after destroy")
	c.Write(2)

	tr.Logf("destroy again")
	s.Destroy()

	tr.Logf("c=%d", c.Peek())
}
