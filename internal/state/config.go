package state

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/duernstein/selfcheckout/helpers"
	"github.com/duernstein/selfcheckout/internal/flow"
	"github.com/duernstein/selfcheckout/internal/payment"
	"github.com/duernstein/selfcheckout/internal/reveal"
	"github.com/duernstein/selfcheckout/log2"
	"github.com/duernstein/selfcheckout/tele"
	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
)

const (
	DefaultDisplayWidth = 20
	DefaultWebListen    = "127.0.0.1:8080"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Kiosk struct {
		Doors []int  `hcl:"doors"`
		Name  string `hcl:"name"`
		URL   string `hcl:"url"`
	}
	Payment struct {
		AppleMs int `hcl:"apple_ms"`
		CardMs  int `hcl:"card_ms"`
	}
	Reveal struct {
		OpeningMs  int `hcl:"opening_ms"`
		OpenMs     int `hcl:"open_ms"`
		CompleteMs int `hcl:"complete_ms"`
	}
	Persist struct {
		Root string `hcl:"root"`
	}
	Tele tele.Config

	UI struct {
		DefaultLanguage string `hcl:"default_language"`
		Display         struct {
			Codepage      string `hcl:"codepage"`
			Device        string `hcl:"device"`
			ScrollDelayMs int    `hcl:"scroll_delay_ms"`
			Width         int    `hcl:"width"`
		}
		Web struct {
			Enable bool   `hcl:"enable"`
			Listen string `hcl:"listen"`
		}
	}

	_copy_guard sync.Mutex //nolint:unused
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

// Doors returns configured door set, {1,2} when empty.
func (c *Config) Doors() ([]flow.Door, error) {
	if len(c.Kiosk.Doors) == 0 {
		return []flow.Door{1, 2}, nil
	}
	ds := make([]flow.Door, 0, len(c.Kiosk.Doors))
	seen := make(map[int]struct{}, len(c.Kiosk.Doors))
	for _, d := range c.Kiosk.Doors {
		if d <= 0 || d > 255 {
			return nil, errors.NotValidf("config kiosk.doors door=%d (1..255)", d)
		}
		if _, ok := seen[d]; ok {
			return nil, errors.NotValidf("config kiosk.doors duplicate door=%d", d)
		}
		seen[d] = struct{}{}
		ds = append(ds, flow.Door(d))
	}
	return ds, nil
}

func (c *Config) AppleDelay() time.Duration {
	return helpers.IntMillisecondDefault(c.Payment.AppleMs, payment.DefaultAppleDelay)
}
func (c *Config) CardDelay() time.Duration {
	return helpers.IntMillisecondDefault(c.Payment.CardMs, payment.DefaultCardDelay)
}

func (c *Config) RevealSchedule() reveal.Schedule {
	return reveal.Schedule{
		Opening:  helpers.IntMillisecondDefault(c.Reveal.OpeningMs, reveal.DefaultSchedule.Opening),
		Open:     helpers.IntMillisecondDefault(c.Reveal.OpenMs, reveal.DefaultSchedule.Open),
		Complete: helpers.IntMillisecondDefault(c.Reveal.CompleteMs, reveal.DefaultSchedule.Complete),
	}
}

func (c *Config) DisplayWidth() uint32 {
	if c.UI.Display.Width <= 0 {
		return DefaultDisplayWidth
	}
	return uint32(c.UI.Display.Width)
}

func (c *Config) WebListen() string {
	if c.UI.Web.Listen == "" {
		return DefaultWebListen
	}
	return c.UI.Web.Listen
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	// hcl appends to filled slices, list in later source replaces earlier one
	prevDoors := c.Kiosk.Doors
	c.Kiosk.Doors = nil
	err = hcl.Unmarshal(bs, c)
	if c.Kiosk.Doors == nil {
		c.Kiosk.Doors = prevDoors
	}
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
