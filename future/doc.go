// Package future provides a write-once result slot that readers can wait on.
//
//	f := future.New[*Report]()
//	go func() { f.Set(build()) }()
//	report, err := f.Get(ctx)
//
// The first Set wins; later ones are ignored.
package future
