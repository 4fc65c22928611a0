package availability

type SourceState int

const (
	SourcePending SourceState = iota
	SourceLoaded
	SourceEmpty
	SourceFailed
)

func (s SourceState) String() string {
	switch s {
	case SourcePending:
		return "pending"
	case SourceLoaded:
		return "loaded"
	case SourceEmpty:
		return "empty"
	case SourceFailed:
		return "failed"
	}
	return "unknown"
}

// Source is the outcome of one upstream read. The zero value is pending.
type Source[T any] struct {
	State SourceState
	Data  T
	Err   error
}

func Pending[T any]() Source[T] {
	return Source[T]{State: SourcePending}
}

func Loaded[T any](v T) Source[T] {
	return Source[T]{State: SourceLoaded, Data: v}
}

func Empty[T any]() Source[T] {
	return Source[T]{State: SourceEmpty}
}

func Failed[T any](err error) Source[T] {
	return Source[T]{State: SourceFailed, Err: err}
}

func (s Source[T]) Ready() bool  { return s.State != SourcePending }
func (s Source[T]) Failed() bool { return s.State == SourceFailed }
