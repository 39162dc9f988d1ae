package watcher

import (
	"path"

	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/antigravity/core/models"
)

type change int

const (
	changeNone change = iota
	changeAdded
	changeDeleted
	changeMovedFrom
	changeImported
)

// classify maps an fsnotify event to the host notification it stands for.
// A rename reports the old name; the new name arrives as a create.
func classify(op fsnotify.Op) change {
	switch {
	case op.Has(fsnotify.Create):
		return changeAdded
	case op.Has(fsnotify.Remove):
		return changeDeleted
	case op.Has(fsnotify.Rename):
		return changeMovedFrom
	case op.Has(fsnotify.Write):
		return changeImported
	default:
		return changeNone
	}
}

type pathSet struct {
	order []string
	seen  map[string]struct{}
}

func (s *pathSet) add(p string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[p]; ok {
		return
	}
	s.seen[p] = struct{}{}
	s.order = append(s.order, p)
}

func (s *pathSet) has(p string) bool {
	_, ok := s.seen[p]
	return ok
}

// batch collects the changes seen during one debounce window.
type batch struct {
	added     pathSet
	deleted   pathSet
	movedFrom pathSet
	imported  pathSet
}

func (b *batch) add(c change, rel string) {
	switch c {
	case changeAdded:
		b.added.add(rel)
	case changeDeleted:
		b.deleted.add(rel)
	case changeMovedFrom:
		b.movedFrom.add(rel)
	case changeImported:
		if !b.added.has(rel) {
			b.imported.add(rel)
		}
	}
}

func (b *batch) empty() bool {
	return len(b.added.order)+len(b.deleted.order)+len(b.movedFrom.order)+len(b.imported.order) == 0
}

// request turns the batch into a SyncRequest. An added file whose base name
// matches a file renamed away in the same window is reported as moved.
func (b *batch) request() models.SyncRequest {
	movedNames := make(map[string]struct{}, len(b.movedFrom.order))
	for _, p := range b.movedFrom.order {
		movedNames[path.Base(p)] = struct{}{}
	}

	var req models.SyncRequest
	for _, p := range b.added.order {
		if _, ok := movedNames[path.Base(p)]; ok {
			req.Moved = append(req.Moved, p)
		} else {
			req.Added = append(req.Added, p)
		}
	}
	req.Deleted = append(req.Deleted, b.deleted.order...)
	req.MovedFrom = append(req.MovedFrom, b.movedFrom.order...)
	req.Imported = append(req.Imported, b.imported.order...)
	return req
}
