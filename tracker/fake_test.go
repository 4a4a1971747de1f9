package tracker_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"lol-discord-bot/riot"
)

// fakeAPI sirve partidas en memoria y registra cada llamada.
type fakeAPI struct {
	mu sync.Mutex

	puuids     map[string]string // "Nombre#tag" -> puuid
	matchIDs   []string
	matches    map[string]*riot.Match
	resolveErr error
	listErr    error
	fetchErr   map[string]error

	calls       []string
	windowStart *time.Time
	limit       int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		puuids:   map[string]string{"Nova#EUW": "P123"},
		matches:  map[string]*riot.Match{},
		fetchErr: map[string]error{},
	}
}

func (f *fakeAPI) ResolveHandle(_ context.Context, id riot.Identity) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "resolve")
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	puuid, ok := f.puuids[id.String()]
	if !ok {
		return "", riot.ErrNotFound
	}
	return puuid, nil
}

func (f *fakeAPI) ListMatchIDs(_ context.Context, _ string, windowStart *time.Time, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list")
	f.windowStart = windowStart
	f.limit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := f.matchIDs
	if limit < len(ids) {
		ids = ids[:limit]
	}
	return append([]string(nil), ids...), nil
}

func (f *fakeAPI) FetchMatch(_ context.Context, matchID string) (*riot.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "fetch:"+matchID)
	if err := f.fetchErr[matchID]; err != nil {
		return nil, err
	}
	m, ok := f.matches[matchID]
	if !ok {
		return nil, errors.New("partida desconocida")
	}
	return m, nil
}

func (f *fakeAPI) addMatch(matchID, puuid string, won bool, deaths int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[matchID] = &riot.Match{
		Metadata: riot.MatchMetadata{MatchID: matchID},
		Info: riot.MatchInfo{Participants: []riot.Participant{
			{PUUID: "someone-else", Win: !won, Deaths: 99},
			{PUUID: puuid, Win: won, Deaths: deaths, ChampionName: "Azir"},
		}},
	}
}

// setLatest pone matchID como la partida más reciente.
func (f *fakeAPI) setLatest(matchID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchIDs = append([]string{matchID}, f.matchIDs...)
}

type sentMessage struct {
	content string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, content string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{content: content})
	return n.err
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
