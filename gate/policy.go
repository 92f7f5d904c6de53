package gate

import "context"

// Policy adds per-record rules for one resource type on top of the profile
// permission check.
type Policy[S comparable] interface {
	// Can reports whether subject may perform action on the given record.
	Can(ctx context.Context, subject S, action Action, value any) bool
}
