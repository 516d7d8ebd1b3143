package browse

import "github.com/Zuo-Peng/ttsb/internal/manifest"

// Session owns one loaded collection and the current view over it. Criteria
// and page changes are events; each one recomputes the page and notifies
// subscribers. A Session is not safe for concurrent use.
type Session struct {
	summaries []manifest.Summary
	byID      map[string]int
	bounds    Criteria
	pageSize  int

	criteria Criteria
	filtered []manifest.Summary // cached for criteria
	page     Page

	subscribers map[int]func(Page)
	nextSubID   int
}

// NewSession starts a session showing the first page of the full collection.
// summaries must not be modified afterwards.
func NewSession(summaries []manifest.Summary, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	s := &Session{
		summaries:   summaries,
		byID:        make(map[string]int, len(summaries)),
		bounds:      BoundsOf(summaries),
		pageSize:    pageSize,
		subscribers: make(map[int]func(Page)),
	}
	for i, sum := range summaries {
		s.byID[sum.ConversationID] = i
	}
	s.criteria = s.bounds
	s.filtered = Filter(summaries, s.criteria)
	s.page = Paginate(s.filtered, PageRequest{Index: 0, Size: pageSize})
	return s
}

// Subscribe registers fn to be called with the new page after every event.
// The returned func removes the subscription.
func (s *Session) Subscribe(fn func(Page)) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

// SetCriteria replaces the criteria and refilters. The current page index is
// kept and clamped, so shrinking the result set lands on its last page.
func (s *Session) SetCriteria(c Criteria) Page {
	if c != s.criteria || s.filtered == nil {
		s.criteria = c
		s.filtered = Filter(s.summaries, c)
	}
	return s.paginate(s.page.Index)
}

// SetPage moves to page index i, reusing the cached filter result.
func (s *Session) SetPage(i int) Page {
	return s.paginate(i)
}

func (s *Session) paginate(i int) Page {
	s.page = Paginate(s.filtered, PageRequest{Index: i, Size: s.pageSize})
	for _, fn := range s.subscribers {
		fn(s.page)
	}
	return s.page
}

func (s *Session) Page() Page { return s.page }
func (s *Session) Criteria() Criteria { return s.criteria }
func (s *Session) PageSize() int { return s.pageSize }
func (s *Session) Len() int { return len(s.summaries) }

// Bounds returns criteria spanning the whole collection.
func (s *Session) Bounds() Criteria { return s.bounds }

// Lookup finds a summary by conversation id.
func (s *Session) Lookup(id string) (manifest.Summary, bool) {
	i, ok := s.byID[id]
	if !ok {
		return manifest.Summary{}, false
	}
	return s.summaries[i], true
}
