package allocation

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"reviewers/pkg/developer"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNotEnoughDevelopers = errors.New("not enough developers to allocate reviewers")
	ErrDuplicateDeveloper  = errors.New("duplicate developer name")
)

type Allocator struct {
	rand *rand.Rand
}

// New returns an allocator. A zero seed means a time based one.
func New(seed int64) *Allocator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Allocator{rand: rand.New(rand.NewSource(seed))}
}

// Allocate fills ReviewerNames of every developer and the matching ReviewFor
// of every reviewer. Preferable reviewers go first, the rest is topped up
// with the least loaded developers.
func (a *Allocator) Allocate(devs []*developer.Developer) error {
	byName := make(map[string]*developer.Developer, len(devs))
	for _, d := range devs {
		if _, ok := byName[d.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateDeveloper, d.Name)
		}
		byName[d.Name] = d
	}
	for _, d := range devs {
		if d.ReviewerNumber > len(devs)-1 {
			return fmt.Errorf("%w: %s needs %d reviewers but only %d other developers exist",
				ErrNotEnoughDevelopers, d.Name, d.ReviewerNumber, len(devs)-1)
		}
	}

	order := make([]*developer.Developer, len(devs))
	copy(order, devs)
	a.rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	for _, d := range order {
		for _, name := range a.shuffled(d.PreferableReviewerNames.Sorted()) {
			if d.ReviewerNames.Len() >= d.ReviewerNumber {
				break
			}
			reviewer, ok := byName[name]
			if !ok {
				log.Debugf("Preferable reviewer %q of %s is not on the roster", name, d.Name)
				continue
			}
			assign(d, reviewer)
		}
		for d.ReviewerNames.Len() < d.ReviewerNumber {
			reviewer := a.leastLoaded(d, devs)
			if reviewer == nil {
				break
			}
			assign(d, reviewer)
		}
	}
	return nil
}

func assign(d, reviewer *developer.Developer) {
	if reviewer.Name == d.Name {
		return
	}
	d.ReviewerNames.Add(reviewer.Name)
	reviewer.ReviewFor.Add(d.Name)
}

func (a *Allocator) leastLoaded(d *developer.Developer, devs []*developer.Developer) *developer.Developer {
	var candidates []*developer.Developer
	for _, c := range devs {
		if c.Name == d.Name || d.ReviewerNames.Contains(c.Name) {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil
	}
	a.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ReviewFor.Len() < candidates[j].ReviewFor.Len()
	})
	return candidates[0]
}

func (a *Allocator) shuffled(names []string) []string {
	a.rand.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})
	return names
}
