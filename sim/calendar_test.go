package sim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Calendar", func() {
	var (
		mockCtrl *gomock.Controller
		calendar *Calendar
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		calendar = NewCalendar(0, 10, DefaultEpsilon)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	schedule := func(t VTime, model string, action Action) CancelToken {
		evt, token := MakeEvent(t, action, model, "test event")
		Expect(calendar.Schedule(evt)).To(Succeed())
		return token
	}

	runAll := func(selector Selector) {
		for {
			more, err := calendar.ExecuteNext(selector)
			Expect(err).ToNot(HaveOccurred())
			if !more {
				return
			}
		}
	}

	It("should reject scheduling in the past", func() {
		evt, _ := MakeEvent(-1, func() {}, "model", "too late")

		err := calendar.Schedule(evt)

		var pastSchedule *PastScheduleError
		Expect(errors.As(err, &pastSchedule)).To(BeTrue())
		Expect(pastSchedule.Time).To(Equal(VTime(-1)))
	})

	It("should run events in time order", func() {
		var order []string
		schedule(3, "c", func() { order = append(order, "c") })
		schedule(1, "a", func() { order = append(order, "a") })
		schedule(2, "b", func() { order = append(order, "b") })

		runAll(FIFOSelector)

		Expect(order).To(Equal([]string{"a", "b", "c"}))
		Expect(calendar.CurrentTime()).To(Equal(VTime(10)))
	})

	It("should keep insertion order among same-time events", func() {
		var order []string
		schedule(1, "a", func() { order = append(order, "a") })
		schedule(1, "b", func() { order = append(order, "b") })
		schedule(1, "c", func() { order = append(order, "c") })

		runAll(FIFOSelector)

		Expect(order).To(Equal([]string{"a", "b", "c"}))
	})

	It("should dispatch a concurrent batch in select order", func() {
		var order []string
		schedule(1, "a", func() { order = append(order, "a") })
		schedule(1, "b", func() { order = append(order, "b") })
		schedule(1, "c", func() { order = append(order, "c") })

		lastFirst := func(names []string) string {
			return names[len(names)-1]
		}
		runAll(lastFirst)

		Expect(order).To(Equal([]string{"c", "b", "a"}))
	})

	It("should fail when select returns an unknown name", func() {
		schedule(1, "a", func() {})
		schedule(1, "b", func() {})

		_, err := calendar.ExecuteNext(func(names []string) string {
			return "nobody"
		})

		var selectInvalid *SelectInvalidError
		Expect(errors.As(err, &selectInvalid)).To(BeTrue())
		Expect(selectInvalid.Candidates).To(Equal([]string{"a", "b"}))
	})

	It("should skip events cancelled before extraction", func() {
		executed := false
		skipped := false
		schedule(1, "a", func() { executed = true })
		token := schedule(2, "b", func() { skipped = true })

		token.Cancel()
		runAll(FIFOSelector)

		Expect(executed).To(BeTrue())
		Expect(skipped).To(BeFalse())
	})

	It("should drop an event cancelled by an earlier action in the batch", func() {
		var tokenB CancelToken
		ranB := false
		schedule(1, "a", func() { tokenB.Cancel() })
		tokenB = schedule(1, "b", func() { ranB = true })

		runAll(FIFOSelector)

		Expect(ranB).To(BeFalse())
	})

	It("should treat zero-delay events scheduled inside an action as concurrent", func() {
		var order []string
		schedule(1, "a", func() {
			order = append(order, "a")
			evt, _ := MakeEvent(1, func() { order = append(order, "cascade") },
				"b", "cascaded event")
			Expect(calendar.Schedule(evt)).To(Succeed())
		})

		more, err := calendar.ExecuteNext(FIFOSelector)

		Expect(err).ToNot(HaveOccurred())
		Expect(more).To(BeTrue())
		Expect(order).To(Equal([]string{"a", "cascade"}))
	})

	It("should halt when the next event is beyond the end time", func() {
		executed := false
		schedule(10.5, "a", func() { executed = true })

		more, err := calendar.ExecuteNext(FIFOSelector)

		Expect(err).ToNot(HaveOccurred())
		Expect(more).To(BeFalse())
		Expect(executed).To(BeFalse())
		Expect(calendar.CurrentTime()).To(Equal(VTime(10)))
	})

	It("should advance to the end time when drained", func() {
		schedule(1, "a", func() {})

		runAll(FIFOSelector)

		Expect(calendar.CurrentTime()).To(Equal(VTime(10)))
	})

	It("should invoke hooks at every position", func() {
		var positions []*HookPos
		hook := NewMockHook(mockCtrl)
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			positions = append(positions, ctx.Pos)
		}).AnyTimes()
		calendar.AcceptHook(hook)

		schedule(1, "a", func() {})
		runAll(FIFOSelector)

		Expect(positions).To(ContainElement(HookPosEventScheduled))
		Expect(positions).To(ContainElement(HookPosBeforeEventAction))
		Expect(positions).To(ContainElement(HookPosTimeAdvance))
	})

	It("should suppress time-advance emissions within epsilon", func() {
		var advances []TimeAdvanceDetail
		hook := NewMockHook(mockCtrl)
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			if ctx.Pos == HookPosTimeAdvance {
				advances = append(advances, ctx.Item.(TimeAdvanceDetail))
			}
		}).AnyTimes()
		calendar.AcceptHook(hook)

		schedule(1, "a", func() {
			evt, _ := MakeEvent(1+DefaultEpsilon/2, func() {}, "b", "nearby event")
			Expect(calendar.Schedule(evt)).To(Succeed())
		})
		runAll(FIFOSelector)

		Expect(advances).To(HaveLen(2))
		Expect(advances[0]).To(Equal(TimeAdvanceDetail{Prev: 0, Next: 1}))
		Expect(advances[1].Prev).To(BeNumerically("~", 1, 0.01))
		Expect(advances[1].Next).To(Equal(VTime(10)))
	})
})
