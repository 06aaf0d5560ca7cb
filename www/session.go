package www

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/angas/elkvart-go/dayahead"
)

const (
	sessionName    = "elkvart"
	keySelectedIdx = "selected_idx"
	keySelectedFp  = "selected_fp"
)

// Selection is the one piece of state that outlives a render: which bar the
// user last clicked, bound to a fingerprint of the row set it was made
// against. A selection never applies to a different day, area or row count.
type Selection struct {
	Index       int
	Fingerprint string
}

func (sel Selection) ValidFor(snap dayahead.Snapshot) bool {
	return sel.Fingerprint == snap.Fingerprint() && sel.Index >= 0 && sel.Index < len(snap.Rows)
}

// SelectionStore keeps the selection in a session cookie, one per browser.
type SelectionStore struct {
	store *sessions.CookieStore
}

func NewSelectionStore(secret []byte) *SelectionStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SelectionStore{store: store}
}

func (s *SelectionStore) Get(r *http.Request) (Selection, bool) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return Selection{}, false
	}
	idx, okIdx := session.Values[keySelectedIdx].(int)
	fp, okFp := session.Values[keySelectedFp].(string)
	if !okIdx || !okFp {
		return Selection{}, false
	}
	return Selection{Index: idx, Fingerprint: fp}, true
}

func (s *SelectionStore) Save(w http.ResponseWriter, r *http.Request, sel Selection) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values[keySelectedIdx] = sel.Index
	session.Values[keySelectedFp] = sel.Fingerprint
	return session.Save(r, w)
}

func (s *SelectionStore) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	delete(session.Values, keySelectedIdx)
	delete(session.Values, keySelectedFp)
	return session.Save(r, w)
}
