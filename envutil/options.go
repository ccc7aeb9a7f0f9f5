package envutil

// Option modifies a Reader. Functions like String and Duration accept
// options so callers can supply defaults and validation inline.
type Option[T any] func(Reader[T]) Reader[T]

// Default supplies a value to use when the variable is unset.
func Default[T any](dfl T) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.WithDefault(dfl)
	}
}

// Validate runs f against a present value and records its error.
func Validate[T any](f func(T) error) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return Map(rdr, func(v T) (T, error) {
			return v, f(v)
		})
	}
}
