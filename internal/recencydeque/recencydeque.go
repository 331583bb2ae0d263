// Package recencydeque implements an insertion-ordered set with O(1)
// move-to-front and pop-tail, the structure underlying LRU and ARC's four
// resident/ghost lists.
//
// It follows the same container/list-plus-index pattern the teacher's
// policy/twoq package uses for its A1in admission queue (an *list.List
// paired with a map[key]*list.Element for O(1) membership and removal),
// generalized here to plain string keys with no attached value.
package recencydeque

import "container/list"

// Deque is a RecencyDeque. Front is most-recently-used, back is
// least-recently-used. The zero value is not usable; use New.
type Deque struct {
	l   list.List
	idx map[string]*list.Element
}

// New constructs an empty deque.
func New() *Deque {
	d := &Deque{idx: make(map[string]*list.Element)}
	d.l.Init()
	return d
}

// PushFront removes any prior occurrence of k, then inserts it at front.
func (d *Deque) PushFront(k string) {
	if e, ok := d.idx[k]; ok {
		d.l.Remove(e)
	}
	d.idx[k] = d.l.PushFront(k)
}

// PopBack removes and returns the oldest key, or "" if empty.
func (d *Deque) PopBack() (string, bool) {
	e := d.l.Back()
	if e == nil {
		return "", false
	}
	d.l.Remove(e)
	k := e.Value.(string)
	delete(d.idx, k)
	return k, true
}

// Remove deletes k if present.
func (d *Deque) Remove(k string) {
	if e, ok := d.idx[k]; ok {
		d.l.Remove(e)
		delete(d.idx, k)
	}
}

// Contains reports whether k is present.
func (d *Deque) Contains(k string) bool {
	_, ok := d.idx[k]
	return ok
}

// Len reports the number of resident keys.
func (d *Deque) Len() int { return len(d.idx) }

// ForEachBackToFront calls fn for every key from least- to
// most-recently-used, stopping early if fn returns false.
func (d *Deque) ForEachBackToFront(fn func(key string) bool) {
	for e := d.l.Back(); e != nil; e = e.Prev() {
		if !fn(e.Value.(string)) {
			return
		}
	}
}
