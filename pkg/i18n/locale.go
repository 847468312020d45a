package i18n

import "sync"

// Locale holds an "active language" shared by collaborators that cannot take
// the language as a parameter.
//
// Activate and Do restore the previous language on every exit path, but two
// goroutines working on the same Locale still observe each other's language.
// Callers sharing a Locale across goroutines must serialize those sections.
type Locale struct {
	mu   sync.RWMutex
	lang string
}

// NewLocale returns a Locale with lang active.
func NewLocale(lang string) *Locale {
	return &Locale{lang: Normalize(lang)}
}

// Get returns the active language.
func (l *Locale) Get() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

// Set replaces the active language.
func (l *Locale) Set(lang string) {
	l.mu.Lock()
	l.lang = Normalize(lang)
	l.mu.Unlock()
}

// Activate switches to lang and returns a func restoring the language that
// was active before the call.
func (l *Locale) Activate(lang string) (restore func()) {
	l.mu.Lock()
	prev := l.lang
	l.lang = Normalize(lang)
	l.mu.Unlock()

	return func() { l.Set(prev) }
}

// Do runs fn with lang active. The previous language is restored when fn
// returns or panics; a panic is propagated after restoring.
func (l *Locale) Do(lang string, fn func() error) error {
	restore := l.Activate(lang)
	defer restore()
	return fn()
}
