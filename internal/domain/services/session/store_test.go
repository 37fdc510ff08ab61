package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestGetMissing(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get("nope"); ok {
		t.Fatal("expected miss for unknown session")
	}
}

func TestCreateIfAbsentFirstWriterWins(t *testing.T) {
	s := NewStore()

	first := s.CreateIfAbsent("s1", State{Persona: "grandma", Language: "english"})
	if first.Persona != "grandma" {
		t.Fatalf("persona = %q", first.Persona)
	}

	// Second creation attempt must not replace the existing state
	second := s.CreateIfAbsent("s1", State{Persona: "skeptic", Language: "hinglish"})
	if second.Persona != "grandma" || second.Language != "english" {
		t.Fatalf("existing state replaced: %+v", second)
	}
}

func TestUpdateCounters(t *testing.T) {
	s := NewStore()
	s.CreateIfAbsent("s1", State{Persona: "grandma", StartedAt: time.Now()})

	state, ok := s.Update("s1", func(st *State) {
		st.TurnCount = 3
		st.QuestionsAsked = 2
		st.AddRedFlag("Urgency")
		st.AddRedFlag("Urgency")
		st.AddRedFlag("OTP Request")
	})
	if !ok {
		t.Fatal("update on existing session must succeed")
	}
	if state.TurnCount != 3 || state.QuestionsAsked != 2 {
		t.Fatalf("counters not applied: %+v", state)
	}
	if len(state.RedFlags) != 2 {
		t.Fatalf("red flags must deduplicate, got %v", state.RedFlags)
	}
}

func TestUpdateMissing(t *testing.T) {
	s := NewStore()
	if _, ok := s.Update("ghost", func(st *State) {}); ok {
		t.Fatal("update on unknown session must fail")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.CreateIfAbsent("s1", State{RedFlags: []string{"Urgency"}})

	state, _ := s.Get("s1")
	state.RedFlags[0] = "mutated"
	state.TurnCount = 99

	fresh, _ := s.Get("s1")
	if fresh.RedFlags[0] != "Urgency" || fresh.TurnCount != 0 {
		t.Fatalf("store state leaked through returned copy: %+v", fresh)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	s := NewStore()
	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", n%4)
			s.CreateIfAbsent(id, State{Persona: "grandma"})
			s.Update(id, func(st *State) {
				st.ElicitationAttempts++
			})
		}(i)
	}
	wg.Wait()

	if s.Count() != 4 {
		t.Fatalf("expected 4 sessions, got %d", s.Count())
	}

	total := 0
	for i := 0; i < 4; i++ {
		state, ok := s.Get(fmt.Sprintf("s%d", i))
		if !ok {
			t.Fatalf("session s%d missing", i)
		}
		total += state.ElicitationAttempts
	}
	if total != workers {
		t.Fatalf("lost updates: %d of %d recorded", total, workers)
	}
}
