// Package entity defines the capability every pooled unit implements.
//
// A variant is constructed once in a pristine state, then cycles through
// Init -> active use -> Reset -> pooled for as long as its factory lives.
// Reset must leave the instance observably equal to a freshly constructed one:
// no residual config values and no lingering resource handles.
package entity

import "github.com/zeusync/entitypool/internal/core/view"

// Entity is the capability set a type needs to participate in pooling.
// Init is called exactly once per activation; calling it twice without an
// intervening Reset is a caller bug.
type Entity[C any] interface {
	Init(cfg C) error
	Reset()
}

// Viewer is implemented by variants that own a presentation handle.
type Viewer interface {
	View() *view.Node
}

// Updater is implemented by variants that consume the per-frame tick.
type Updater interface {
	Update(dt float64)
}
