package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Event", func() {
	It("should start out not cancelled", func() {
		evt, _ := MakeEvent(1.0, func() {}, "model", "test event")

		Expect(evt.Cancelled()).To(BeFalse())
		Expect(evt.Time()).To(Equal(VTime(1.0)))
		Expect(evt.Model()).To(Equal("model"))
		Expect(evt.Description()).To(Equal("test event"))
	})

	It("should share the cancelled flag with the token", func() {
		evt, token := MakeEvent(1.0, func() {}, "model", "test event")

		token.Cancel()

		Expect(evt.Cancelled()).To(BeTrue())
	})

	It("should cancel idempotently", func() {
		evt, token := MakeEvent(1.0, func() {}, "model", "test event")

		token.Cancel()
		token.Cancel()

		Expect(evt.Cancelled()).To(BeTrue())
	})

	It("should tolerate a zero token", func() {
		var token CancelToken

		Expect(func() { token.Cancel() }).ToNot(Panic())
	})

	It("should describe itself", func() {
		evt, _ := MakeEvent(1.5, func() {}, "clock", "internal transition")

		Expect(evt.String()).To(ContainSubstring("model = clock"))
		Expect(evt.String()).To(ContainSubstring("cancelled = false"))
	})
})
