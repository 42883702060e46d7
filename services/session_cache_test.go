package services

import (
	"testing"

	"opentrivia/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestGetExclusionSetNotStaleAfterFailedCacheWrite(t *testing.T) {
	st, _ := newTestStore(t)
	mr, client := newTestRedis(t)
	svc := NewSessionService(st, client)

	session, err := svc.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := svc.AppendServed(session.Token, []string{"a"}); err != nil {
		t.Fatalf("AppendServed failed: %v", err)
	}

	// transient outage while the second append refreshes the mirror
	mr.SetError("LOADING Redis is loading the dataset in memory")
	if err := svc.AppendServed(session.Token, []string{"b"}); err != nil {
		t.Fatalf("AppendServed failed: %v", err)
	}
	mr.SetError("")

	ids, err := svc.GetExclusionSet(session.Token)
	if err != nil {
		t.Fatalf("GetExclusionSet failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d exclusion IDs after cache recovery, want the full history of 2", len(ids))
	}
}

func TestSessionDedupSurvivesTransientCacheOutage(t *testing.T) {
	st, db := newTestStore(t)
	mr, client := newTestRedis(t)
	sessions := NewSessionService(st, client)
	svc := NewQuestionService(st, sessions)

	insertQuestions(t, db, "Arrays", 6)

	session, err := sessions.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	req := &QuestionRequest{Amount: "2", Token: session.Token}

	seen := make(map[string]bool)
	serve := func(label string, want int) *models.TriviaResponse {
		t.Helper()
		resp, err := svc.GetQuestions(req)
		if err != nil {
			t.Fatalf("%s query failed: %v", label, err)
		}
		if len(resp.Results) != want {
			t.Fatalf("%s query: got %d results, want %d", label, len(resp.Results), want)
		}
		for _, r := range resp.Results {
			if seen[r.Question] {
				t.Errorf("%s query: question %q served twice to the same session", label, r.Question)
			}
			seen[r.Question] = true
		}
		return resp
	}

	serve("warm", 2)

	// the outage spans the read and the write-back of one whole request
	mr.SetError("LOADING Redis is loading the dataset in memory")
	serve("outage", 2)
	mr.SetError("")

	serve("recovered", 2)

	final, err := svc.GetQuestions(req)
	if err != nil {
		t.Fatalf("final query failed: %v", err)
	}
	if final.ResponseCode != models.ResponseCodeNoResults || len(final.Results) != 0 {
		t.Errorf("exhausted catalog: got code %d with %d results", final.ResponseCode, len(final.Results))
	}
}
