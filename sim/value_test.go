package sim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type cloneTracker struct {
	items []int
}

func (c cloneTracker) CloneValue() any {
	items := make([]int, len(c.items))
	copy(items, c.items)

	return cloneTracker{items: items}
}

var _ = Describe("Value", func() {
	It("should extract the wrapped type", func() {
		v := Wrap(42)

		n, err := As[int](v)

		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(42))
	})

	It("should fail extraction with a mismatched type", func() {
		v := Wrap(42)

		_, err := As[string](v)

		var mismatch *TypeMismatchError
		Expect(errors.As(err, &mismatch)).To(BeTrue())
		Expect(mismatch.Want).To(Equal("string"))
		Expect(mismatch.Got).To(Equal("int"))
	})

	It("should clone value payloads independently", func() {
		v := Wrap(3.5)

		clone := v.Clone()

		f, err := As[float64](clone)
		Expect(err).ToNot(HaveOccurred())
		Expect(f).To(Equal(3.5))
	})

	It("should clone Cloner payloads deeply", func() {
		original := cloneTracker{items: []int{1, 2, 3}}
		v := Wrap(original)

		clone := v.Clone()

		cloned, err := As[cloneTracker](clone)
		Expect(err).ToNot(HaveOccurred())

		cloned.items[0] = 99
		Expect(original.items[0]).To(Equal(1))
	})

	It("should format the payload as a string", func() {
		Expect(Wrap(7).String()).To(Equal("7"))
	})

	Describe("Transform", func() {
		It("should apply the typed conversion", func() {
			double := Transform(func(v int) int { return v * 2 })

			out, err := double(Wrap(21))

			Expect(err).ToNot(HaveOccurred())
			Expect(out.String()).To(Equal("42"))
		})

		It("should surface a mismatched input", func() {
			double := Transform(func(v int) int { return v * 2 })

			_, err := double(Wrap("not a number"))

			var mismatch *TypeMismatchError
			Expect(errors.As(err, &mismatch)).To(BeTrue())
		})
	})
})
