package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownList is returned when a list identifier cannot be resolved.
var ErrUnknownList = errors.New("unknown list")

// SectionRef is a navigable category obtained from the section list.
type SectionRef struct {
	ID    string
	Label string
}

type ListKind int

const (
	KindPopularShared ListKind = iota
	KindPopularEmailed
	KindPopularViewed
	KindSection
)

const (
	popularSharedID  = "popularShared"
	popularEmailedID = "popularEmailed"
	popularViewedID  = "popularViewed"
)

// ListDef identifies which article list is active. It is a closed set:
// the three popular lists and one per-section list.
type ListDef struct {
	Kind    ListKind
	Section SectionRef // set only for KindSection
}

var (
	PopularShared  = ListDef{Kind: KindPopularShared}
	PopularEmailed = ListDef{Kind: KindPopularEmailed}
	PopularViewed  = ListDef{Kind: KindPopularViewed}
)

// SectionList returns the list definition for a section.
func SectionList(section SectionRef) ListDef {
	return ListDef{Kind: KindSection, Section: section}
}

// ID is stable per list. For sections it equals the section id.
func (l ListDef) ID() string {
	switch l.Kind {
	case KindPopularShared:
		return popularSharedID
	case KindPopularEmailed:
		return popularEmailedID
	case KindPopularViewed:
		return popularViewedID
	default:
		return l.Section.ID
	}
}

func (l ListDef) Title() string {
	switch l.Kind {
	case KindPopularShared:
		return "Popular Shared"
	case KindPopularEmailed:
		return "Popular Emailed"
	case KindPopularViewed:
		return "Popular Viewed"
	default:
		return l.Section.Label
	}
}

// CanLoadMore reports whether the list paginates. Only section lists do.
func (l ListDef) CanLoadMore() bool {
	return l.Kind == KindSection
}

func (l ListDef) String() string {
	if l.Kind == KindSection {
		return "section:" + l.Section.ID
	}
	return l.ID()
}

// PopularList resolves one of the three popular list ids.
func PopularList(id string) (ListDef, error) {
	switch id {
	case popularSharedID:
		return PopularShared, nil
	case popularEmailedID:
		return PopularEmailed, nil
	case popularViewedID:
		return PopularViewed, nil
	default:
		return ListDef{}, fmt.Errorf("%w: %q", ErrUnknownList, id)
	}
}
