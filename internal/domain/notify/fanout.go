package notify

import "context"

// Fanout delivers to a primary channel and then, best effort, to any
// mirrors. A primary failure aborts and propagates; a mirror failure is
// reported through OnMirrorError and never fails the send.
type Fanout struct {
	Primary       Notifier
	Mirrors       []Notifier
	OnMirrorError func(error)
}

func (f Fanout) Send(ctx context.Context, msg Message) error {
	if err := f.Primary.Send(ctx, msg); err != nil {
		return err
	}
	for _, m := range f.Mirrors {
		if err := m.Send(ctx, msg); err != nil && f.OnMirrorError != nil {
			f.OnMirrorError(err)
		}
	}
	return nil
}
