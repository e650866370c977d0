package sim

// A Selector breaks ties among simultaneous events of distinct models. It
// receives the model names of a concurrent batch and must return one of them.
// The calendar only consults the selector for batches of size >= 2.
type Selector func(names []string) string

// FIFOSelector picks the model whose event entered the calendar first. It is
// the default tie-break for atomic models and for compounds that do not
// supply their own.
func FIFOSelector(names []string) string {
	if len(names) == 0 {
		return ""
	}

	return names[0]
}
