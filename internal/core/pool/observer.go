package pool

// Observer receives factory lifecycle notifications. Callbacks run on the
// calling goroutine after the factory lock is released; they must be quick
// and safe for concurrent use.
type Observer interface {
	// OnConstruct fires once per raw construction, including pre-warm.
	OnConstruct(factory string)
	// OnAcquire fires after a successful Create.
	OnAcquire(factory string, reused bool)
	// OnRelease fires after a successful Release.
	OnRelease(factory string)
	// OnReject fires when Create or Release returns an error.
	OnReject(factory string, err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Construct func(factory string)
	Acquire   func(factory string, reused bool)
	Release   func(factory string)
	Reject    func(factory string, err error)
}

func (o ObserverFuncs) OnConstruct(factory string) {
	if o.Construct != nil {
		o.Construct(factory)
	}
}

func (o ObserverFuncs) OnAcquire(factory string, reused bool) {
	if o.Acquire != nil {
		o.Acquire(factory, reused)
	}
}

func (o ObserverFuncs) OnRelease(factory string) {
	if o.Release != nil {
		o.Release(factory)
	}
}

func (o ObserverFuncs) OnReject(factory string, err error) {
	if o.Reject != nil {
		o.Reject(factory, err)
	}
}
