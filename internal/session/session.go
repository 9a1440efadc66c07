// Package session holds the navigation and auth state of one client
// session: the current screen, the loading flag, the signed-in user, and
// the watchlist. It replaces the ambient state of a browser app with an
// explicit object that is injected where needed, so the rest of the
// system stays pure.
package session

import (
	"sync"

	"github.com/darksuryansh/PricePilot/internal/domain"
)

// Screen names the screens of the assistant.
type Screen string

const (
	ScreenHome          Screen = "home"
	ScreenSearchResults Screen = "search-results"
	ScreenProduct       Screen = "product"
	ScreenLogin         Screen = "login"
	ScreenWatchlist     Screen = "watchlist"
	ScreenComparePrices Screen = "compare-prices"
)

// Session is a small state machine over screens. Invalid transitions are
// ignored rather than erroring: a stray click is not a fault. Safe for
// concurrent use.
type Session struct {
	mu sync.Mutex

	screen   Screen
	previous Screen
	loading  bool

	query           string
	selectedProduct string

	user  *domain.AuthUser
	token string

	watchlist      []string
	watchlistIndex map[string]struct{}

	// generation counts navigations so results of superseded requests can
	// be recognized and dropped; in-flight calls are not cancelable once
	// issued.
	generation uint64
}

func New() *Session {
	return &Session{
		screen:         ScreenHome,
		previous:       ScreenHome,
		watchlistIndex: map[string]struct{}{},
	}
}

// Screen returns the current screen.
func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Loading reports whether the loading overlay is up.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetLoading raises or lowers the loading overlay.
func (s *Session) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Query returns the current search query.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SelectedProduct returns the id of the product being viewed, if any.
func (s *Session) SelectedProduct() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedProduct
}

// SubmitSearch records a name search and moves to the results screen.
func (s *Session) SubmitSearch(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.transition(ScreenSearchResults)
	return s.nextGeneration()
}

// SelectProduct moves to the product screen for the given id. Valid from
// the home and search-results screens only; ignored elsewhere. The
// returned generation identifies the load this navigation started.
func (s *Session) SelectProduct(id string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenHome && s.screen != ScreenSearchResults {
		return 0, false
	}
	s.selectedProduct = id
	s.transition(ScreenProduct)
	return s.nextGeneration(), true
}

// ProductLoadFailed aborts a navigation to the product screen: the base
// product could not be loaded, so the previous screen is restored and the
// selection cleared.
func (s *Session) ProductLoadFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenProduct {
		return
	}
	s.selectedProduct = ""
	s.screen = s.previous
}

// GoHome resets the session to the home screen, clearing the query and
// the selected product.
func (s *Session) GoHome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.selectedProduct = ""
	s.transition(ScreenHome)
	s.nextGeneration()
}

// NavigateLogin moves to the login screen.
func (s *Session) NavigateLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition(ScreenLogin)
}

// NavigateWatchlist moves to the watchlist, or to login when no user is
// signed in.
func (s *Session) NavigateWatchlist() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		s.transition(ScreenLogin)
	} else {
		s.transition(ScreenWatchlist)
	}
	return s.screen
}

// NavigateCompare moves to the compare-prices screen.
func (s *Session) NavigateCompare() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition(ScreenComparePrices)
}

// Authenticate records a signed-in user. When the login screen is up, a
// successful login lands on the watchlist.
func (s *Session) Authenticate(user *domain.AuthUser, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
	if s.screen == ScreenLogin {
		s.transition(ScreenWatchlist)
	}
}

// ClearAuth signs the user out.
func (s *Session) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

// User returns the signed-in user, or nil.
func (s *Session) User() *domain.AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the session token, or the empty string.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// IsCurrent reports whether the generation still identifies the latest
// navigation. Callers drop results whose generation has been superseded.
func (s *Session) IsCurrent(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generation == s.generation
}

// AddToWatchlist records a product id. Duplicates are ignored.
func (s *Session) AddToWatchlist(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watchlistIndex[id]; ok {
		return
	}
	s.watchlistIndex[id] = struct{}{}
	s.watchlist = append(s.watchlist, id)
}

// RemoveFromWatchlist drops a product id.
func (s *Session) RemoveFromWatchlist(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watchlistIndex[id]; !ok {
		return
	}
	delete(s.watchlistIndex, id)
	for i, w := range s.watchlist {
		if w == id {
			s.watchlist = append(s.watchlist[:i], s.watchlist[i+1:]...)
			break
		}
	}
}

// Watchlist returns the watched product ids in insertion order.
func (s *Session) Watchlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.watchlist))
	copy(out, s.watchlist)
	return out
}

// transition moves to a screen, remembering where we came from. Callers
// hold the lock.
func (s *Session) transition(to Screen) {
	if s.screen == to {
		return
	}
	s.previous = s.screen
	s.screen = to
}

func (s *Session) nextGeneration() uint64 {
	s.generation++
	return s.generation
}
