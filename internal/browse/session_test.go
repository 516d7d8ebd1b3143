package browse

import "testing"

func TestSessionStartsWithEverything(t *testing.T) {
	s := NewSession(makeSummaries(60), 0)
	p := s.Page()
	if p.Matches != 60 || p.TotalPages != 3 || p.Index != 0 || len(p.Items) != DefaultPageSize {
		t.Fatalf("unexpected initial page: %+v", p)
	}
	if s.Criteria() != s.Bounds() {
		t.Fatalf("initial criteria %+v != bounds %+v", s.Criteria(), s.Bounds())
	}
	if s.Len() != 60 || s.PageSize() != DefaultPageSize {
		t.Fatalf("unexpected len/page size: %d/%d", s.Len(), s.PageSize())
	}
}

func TestSessionCriteriaChangeClampsPage(t *testing.T) {
	all := makeSummaries(60)
	s := NewSession(all, 25)
	s.SetPage(2)
	if s.Page().Index != 2 {
		t.Fatalf("expected page 2, got %d", s.Page().Index)
	}

	c := s.Bounds()
	c.MinTurns, c.MaxTurns = 10, 20
	p := s.SetCriteria(c)
	if p.Index != 0 || p.TotalPages != 1 || len(p.Items) != 11 {
		t.Fatalf("expected clamped single page of 11, got %+v", p)
	}

	want := Paginate(Filter(all, c), PageRequest{Index: 0, Size: 25})
	if p.Items[0] != want.Items[0] || p.Items[10] != want.Items[10] {
		t.Fatal("session page differs from pure Filter/Paginate")
	}
}

func TestSessionSetPageUsesCurrentCriteria(t *testing.T) {
	all := makeSummaries(100)
	s := NewSession(all, 10)
	c := Criteria{MinTurns: 20, MaxTurns: 80, MinDuration: 0, MaxDuration: 1000}
	s.SetCriteria(c)

	p := s.SetPage(3)
	want := Paginate(Filter(all, c), PageRequest{Index: 3, Size: 10})
	if p.Index != want.Index || p.TotalPages != want.TotalPages || p.Items[0] != want.Items[0] {
		t.Fatalf("got %+v, want %+v", p, want)
	}
	if p.Items[0].NumTurns != 50 {
		t.Fatalf("expected page 3 to start at 50 turns, got %d", p.Items[0].NumTurns)
	}
}

func TestSessionSubscribers(t *testing.T) {
	s := NewSession(makeSummaries(60), 25)

	var events []Page
	unsubscribe := s.Subscribe(func(p Page) { events = append(events, p) })

	s.SetPage(1)
	s.SetCriteria(Criteria{MinTurns: 100, MaxTurns: 100})
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Index != 1 || events[1].Matches != 0 || events[1].TotalPages != 1 {
		t.Fatalf("unexpected events: %+v", events)
	}

	unsubscribe()
	s.SetPage(0)
	if len(events) != 2 {
		t.Fatalf("expected no events after unsubscribe, got %d", len(events))
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a := NewSession(makeSummaries(60), 25)
	b := NewSession(makeSummaries(5), 25)
	a.SetPage(2)
	if b.Page().Index != 0 || b.Page().Matches != 5 {
		t.Fatalf("session b affected by session a: %+v", b.Page())
	}
}

func TestSessionLookup(t *testing.T) {
	s := NewSession(makeSummaries(3), 25)
	got, ok := s.Lookup("conv-001")
	if !ok || got.NumTurns != 2 {
		t.Fatalf("Lookup = %+v, %v", got, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Fatal("expected lookup miss")
	}
}
