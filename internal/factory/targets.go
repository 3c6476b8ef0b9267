package factory

import (
	"fmt"

	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/rational"
)

// BuildTarget is one production goal. Index always equals the target's
// position in the target list.
type BuildTarget struct {
	Index   int
	ItemKey string
	Item    *models.Item
	// Rate is items per minute.
	Rate rational.Rational
}

// TargetListener is notified when the target list changes shape
type TargetListener interface {
	TargetAdded(t *BuildTarget)
	TargetRemoved(t *BuildTarget)
}

// TargetListenerFuncs adapts plain functions to TargetListener. Nil fields
// are skipped.
type TargetListenerFuncs struct {
	Added   func(t *BuildTarget)
	Removed func(t *BuildTarget)
}

func (f TargetListenerFuncs) TargetAdded(t *BuildTarget) {
	if f.Added != nil {
		f.Added(t)
	}
}

func (f TargetListenerFuncs) TargetRemoved(t *BuildTarget) {
	if f.Removed != nil {
		f.Removed(t)
	}
}

// Subscribe registers a listener for target additions and removals
func (s *Specification) Subscribe(l TargetListener) {
	s.listeners = append(s.listeners, l)
}

// AddTarget appends a target for itemKey at the default rate. An empty key
// selects the default item.
func (s *Specification) AddTarget(itemKey string) (*BuildTarget, error) {
	return s.AddTargetRate(itemKey, s.defaults.Rate)
}

// AddTargetRate appends a target for itemKey at rate items per minute
func (s *Specification) AddTargetRate(itemKey string, rate rational.Rational) (*BuildTarget, error) {
	if itemKey == "" {
		itemKey = s.defaults.Item
	}
	item, err := s.Item(itemKey)
	if err != nil {
		return nil, err
	}
	if rate.Sign() < 0 {
		return nil, ErrInvalidRate
	}

	target := &BuildTarget{
		Index:   len(s.targets),
		ItemKey: itemKey,
		Item:    item,
		Rate:    rate,
	}
	s.targets = append(s.targets, target)
	for _, l := range s.listeners {
		l.TargetAdded(target)
	}
	return target, nil
}

// RemoveTarget deletes target and renumbers every later target
func (s *Specification) RemoveTarget(target *BuildTarget) error {
	i := target.Index
	if i < 0 || i >= len(s.targets) || s.targets[i] != target {
		return fmt.Errorf("%w: index %d", ErrTargetNotFound, i)
	}
	s.targets = append(s.targets[:i], s.targets[i+1:]...)
	for j := i; j < len(s.targets); j++ {
		s.targets[j].Index--
	}
	s.notifyRemoved(target)
	return nil
}

// ClearTargets removes every target
func (s *Specification) ClearTargets() {
	for len(s.targets) > 0 {
		_ = s.RemoveTarget(s.targets[len(s.targets)-1])
	}
}

// Targets returns the targets in index order
func (s *Specification) Targets() []*BuildTarget {
	out := make([]*BuildTarget, len(s.targets))
	copy(out, s.targets)
	return out
}

// Target returns the target at index i
func (s *Specification) Target(i int) (*BuildTarget, bool) {
	if i < 0 || i >= len(s.targets) {
		return nil, false
	}
	return s.targets[i], true
}

// SetTargetRate changes the rate of a target
func (s *Specification) SetTargetRate(target *BuildTarget, rate rational.Rational) error {
	if rate.Sign() < 0 {
		return ErrInvalidRate
	}
	target.Rate = rate
	return nil
}

// SetTargetItem changes the item of a target
func (s *Specification) SetTargetItem(target *BuildTarget, itemKey string) error {
	item, err := s.Item(itemKey)
	if err != nil {
		return err
	}
	target.ItemKey = itemKey
	target.Item = item
	return nil
}

func (s *Specification) notifyRemoved(t *BuildTarget) {
	for _, l := range s.listeners {
		l.TargetRemoved(t)
	}
}
