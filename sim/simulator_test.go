package sim

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// recordingPrinter captures every callback for assertions.
type recordingPrinter struct {
	NopPrinter

	advances    [][2]VTime
	scheduled   []*Event
	executed    []*Event
	transitions []string
	starts      []string
	steps       []int
	ends        []string
}

func (p *recordingPrinter) OnTimeAdvanced(prev, next VTime) {
	p.advances = append(p.advances, [2]VTime{prev, next})
}

func (p *recordingPrinter) OnEventScheduled(now VTime, evt *Event) {
	p.scheduled = append(p.scheduled, evt)
	Expect(evt.Time()).To(BeNumerically(">=", now))
}

func (p *recordingPrinter) OnExecutingEventAction(now VTime, evt *Event) {
	p.executed = append(p.executed, evt)
}

func (p *recordingPrinter) OnModelStateTransition(
	name string,
	t VTime,
	prev, next string,
) {
	p.transitions = append(p.transitions,
		fmt.Sprintf("%s@%v:%s->%s", name, t, prev, next))
}

func (p *recordingPrinter) OnSimStart(name string, t VTime, state string) {
	p.starts = append(p.starts, fmt.Sprintf("%s@%v:%s", name, t, state))
}

func (p *recordingPrinter) OnSimStep(t VTime, step int) {
	p.steps = append(p.steps, step)
}

func (p *recordingPrinter) OnSimEnd(name string, t VTime, state string) {
	p.ends = append(p.ends, fmt.Sprintf("%s@%v:%s", name, t, state))
}

var _ = Describe("Simulator", func() {
	It("should run an idle atomic model without transitions", func() {
		idle := AtomicSpec[int, int, struct{}]{
			InitialState:  struct{}{},
			DeltaExternal: func(s struct{}, elapsed VTime, x int) struct{} { return s },
			DeltaInternal: func(s struct{}) struct{} { return s },
			Output:        func(s struct{}) int { return 0 },
			TimeAdvance:   func(s struct{}) VTime { return Infinity },
		}

		printer := &recordingPrinter{}
		simulator, err := NewSimulator(
			"idle", NewAtomic(idle), 0, 1, DefaultEpsilon, printer)
		Expect(err).ToNot(HaveOccurred())

		Expect(simulator.Run()).To(Succeed())

		Expect(printer.starts).To(HaveLen(1))
		Expect(printer.transitions).To(BeEmpty())
		Expect(printer.ends).To(Equal([]string{"idle@1:{}"}))
	})

	It("should dispatch simultaneous transitions in select order", func() {
		emitName := func(name string) AtomicSpec[string, string, int] {
			return AtomicSpec[string, string, int]{
				InitialState:  0,
				DeltaExternal: func(s int, elapsed VTime, x string) int { return s },
				DeltaInternal: func(s int) int { return s + 1 },
				Output:        func(s int) string { return name },
				TimeAdvance:   func(s int) VTime { return 1 },
			}
		}

		spec := CompoundSpec{
			Components: map[string]Factory{
				"A": NewAtomic(emitName("A")),
				"B": NewAtomic(emitName("B")),
			},
			Influencers: map[string]map[string]Transformer{
				Self: {"A": nil, "B": nil},
			},
			Select: func(names []string) string {
				Expect(len(names)).To(BeNumerically(">=", 2))
				for _, name := range names {
					if name == "B" {
						return name
					}
				}
				return names[0]
			},
		}

		printer := &recordingPrinter{}
		simulator, err := NewSimulator(
			"pair", NewCompound(spec), 0, 1+DefaultEpsilon/2, DefaultEpsilon,
			printer)
		Expect(err).ToNot(HaveOccurred())

		var outputs []string
		simulator.AddOutputListener(func(from string, t VTime, value Value) {
			v, err := As[string](value)
			Expect(err).ToNot(HaveOccurred())
			outputs = append(outputs, v)
		})

		Expect(simulator.Run()).To(Succeed())

		Expect(outputs).To(Equal([]string{"B", "A"}))
	})

	It("should advance time monotonically", func() {
		printer := &recordingPrinter{}
		simulator, err := NewSimulator(
			"counter", NewAtomic(counterSpec()), 0, 3.5, DefaultEpsilon, printer)
		Expect(err).ToNot(HaveOccurred())

		Expect(simulator.Run()).To(Succeed())

		Expect(printer.advances).ToNot(BeEmpty())
		for i, advance := range printer.advances {
			Expect(advance[1]).To(BeNumerically(">=", advance[0]))
			if i > 0 {
				Expect(advance[0]).To(
					BeNumerically(">=", printer.advances[i-1][1]))
			}
		}
	})

	It("should count steps", func() {
		printer := &recordingPrinter{}
		simulator, err := NewSimulator(
			"counter", NewAtomic(counterSpec()), 0, 3.5, DefaultEpsilon, printer)
		Expect(err).ToNot(HaveOccurred())

		Expect(simulator.Run()).To(Succeed())

		Expect(printer.steps).To(Equal([]int{0, 1, 2}))
	})

	It("should emit start and end for every atomic descendant", func() {
		spec := CompoundSpec{
			Components: map[string]Factory{
				"first":  NewAtomic(counterSpec()),
				"second": NewAtomic(counterSpec()),
			},
		}

		printer := &recordingPrinter{}
		simulator, err := NewSimulator(
			"pair", NewCompound(spec), 0, 0.5, DefaultEpsilon, printer)
		Expect(err).ToNot(HaveOccurred())

		Expect(simulator.Run()).To(Succeed())

		Expect(printer.starts).To(Equal([]string{"first@0:0", "second@0:0"}))
		Expect(printer.ends).To(Equal([]string{"first@0.5:0", "second@0.5:0"}))
	})

	It("should abort the run on a mistyped input", func() {
		simulator, err := NewSimulator(
			"counter", NewAtomic(counterSpec()), 0, 10, DefaultEpsilon, nil)
		Expect(err).ToNot(HaveOccurred())

		Expect(simulator.ScheduleInput(2, Wrap("oops"), "bad input")).
			To(Succeed())
		err = simulator.Run()

		var mismatch *TypeMismatchError
		Expect(errors.As(err, &mismatch)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("counter"))
	})
})
