package core

// Revalidator invalidates cached views of the given paths after a mutation.
// The dashboards poll the API, so the default binding only records the
// invalidation; a real cache can be plugged in without touching call sites.
type Revalidator interface {
	Revalidate(paths ...string)
}

// RevalidateFunc adapts a plain function to the Revalidator interface.
type RevalidateFunc func(paths ...string)

func (f RevalidateFunc) Revalidate(paths ...string) { f(paths...) }

// NopRevalidator discards invalidations; used in tests.
func NopRevalidator() Revalidator {
	return RevalidateFunc(func(...string) {})
}
