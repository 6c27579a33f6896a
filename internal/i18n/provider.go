package i18n

import (
	"sync"

	"github.com/duernstein/selfcheckout/internal/state/persist"
	"github.com/duernstein/selfcheckout/log2"
	"github.com/juju/errors"
)

// PersistTag is storage key of language preference.
const PersistTag = "selfcheckout-lang"

type preference struct{ lang Language }

func (p *preference) MarshalBinary() ([]byte, error) { return []byte(p.lang), nil }
func (p *preference) UnmarshalBinary(b []byte) error {
	lang, err := ParseLanguage(string(b))
	if err != nil {
		return err
	}
	p.lang = lang
	return nil
}

// Provider is Translator with language preference written on every change.
type Provider struct {
	mu      sync.RWMutex
	log     *log2.Log
	catalog *Catalog
	pref    preference
	persist persist.Persist
	onSet   func(Language)
}

var _ Translator = &Provider{}

// NewProvider restores stored language, falls back to def when absent or unreadable,
// then writes current preference back.
// Empty persistRoot keeps preference in memory only.
func NewProvider(catalog *Catalog, def Language, persistRoot string, log *log2.Log) (*Provider, error) {
	if def == "" {
		def = DefaultLanguage
	}
	if _, err := ParseLanguage(string(def)); err != nil {
		return nil, errors.Annotate(err, "default language")
	}
	self := &Provider{
		log:     log,
		catalog: catalog,
		pref:    preference{lang: def},
	}
	if err := self.persist.Init(PersistTag, &self.pref, persistRoot, log); err != nil {
		return nil, errors.Annotate(err, "i18n persist")
	}
	if err := self.persist.Load(); err != nil {
		self.log.Errorf("i18n language preference ignored err=%v", err)
		self.pref.lang = def
	}
	// stored value exists from first start on, corrupt one gets replaced
	if err := self.persist.Store(); err != nil {
		self.log.Errorf("i18n language preference store err=%v", err)
	}
	self.log.Debugf("i18n language=%s", self.pref.lang)
	return self, nil
}

func (self *Provider) Language() Language {
	self.mu.RLock()
	defer self.mu.RUnlock()
	return self.pref.lang
}

// SetLanguage stores preference even when language did not change.
func (self *Provider) SetLanguage(lang Language) error {
	if _, err := ParseLanguage(string(lang)); err != nil {
		return err
	}
	self.mu.Lock()
	self.pref.lang = lang
	err := self.persist.Store()
	f := self.onSet
	self.mu.Unlock()
	if f != nil {
		f(lang)
	}
	return errors.Annotate(err, "i18n SetLanguage")
}

func (self *Provider) Toggle() error { return self.SetLanguage(self.Language().Toggle()) }

func (self *Provider) T(key string) string {
	return self.catalog.T(self.Language(), key)
}

// OnChange registers observer of language changes, e.g. frontend document lang attribute.
func (self *Provider) OnChange(f func(Language)) {
	self.mu.Lock()
	self.onSet = f
	self.mu.Unlock()
}
