package refdata

import (
	"fmt"
	"log"
	"sync"

	"github.com/xuri/excelize/v2"

	"VzlaR011Cleaning/internal/config"
	"VzlaR011Cleaning/internal/r011"
)

// Source reads the master reference workbook holding the three lookup
// sheets (providers, stores, branches). A missing workbook or worksheet is
// non-fatal: the dependent derived columns degrade to empty.
type Source struct {
	Path          string
	ProviderSheet string
	StoreSheet    string
	BranchSheet   string
}

func NewSource(cfg config.AppConfig) *Source {
	return &Source{
		Path:          cfg.RefWorkbookPath,
		ProviderSheet: cfg.ProviderSheet,
		StoreSheet:    cfg.StoreSheet,
		BranchSheet:   cfg.BranchSheet,
	}
}

// Worksheet returns all cell values of a named worksheet, header row first.
func (s *Source) Worksheet(name string) ([][]string, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open reference workbook %s: %w", s.Path, err)
	}
	defer f.Close()
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", name, err)
	}
	return rows, nil
}

// BuildLookups reads the three reference sheets and assembles the lookup
// maps. Each sheet failure is logged and leaves its maps empty rather than
// failing the build.
func (s *Source) BuildLookups() r011.Lookups {
	lk := r011.EmptyLookups()

	if rows, err := s.Worksheet(s.ProviderSheet); err != nil {
		log.Printf("[REFDATA] provider sheet unavailable: %v", err)
	} else {
		lk.BusinessUnit = r011.BuildProviderBusinessUnits(rows)
	}

	if rows, err := s.Worksheet(s.StoreSheet); err != nil {
		log.Printf("[REFDATA] store sheet unavailable: %v", err)
	} else {
		lk.Area, lk.AreaManager = r011.BuildStoreAreaMaps(rows)
	}

	if rows, err := s.Worksheet(s.BranchSheet); err != nil {
		log.Printf("[REFDATA] branch sheet unavailable: %v", err)
	} else {
		lk.Specialist = r011.BuildBranchSpecialists(rows)
	}

	return lk
}

// Cache keeps the most recently built lookups so every upload does not
// re-open the workbook. Refreshed on a cron schedule; see internal/jobs.
type Cache struct {
	mu  sync.RWMutex
	src *Source
	lk  r011.Lookups
	ok  bool
}

func NewCache(src *Source) *Cache {
	return &Cache{src: src}
}

// Refresh rebuilds the cached lookups from the workbook.
func (c *Cache) Refresh() {
	lk := c.src.BuildLookups()
	c.mu.Lock()
	c.lk = lk
	c.ok = true
	c.mu.Unlock()
	log.Printf("[REFDATA] lookups refreshed: %d business units, %d stores, %d specialists",
		len(lk.BusinessUnit), len(lk.Area), len(lk.Specialist))
}

// Lookups returns the cached mappings, building them on first use.
func (c *Cache) Lookups() r011.Lookups {
	c.mu.RLock()
	if c.ok {
		defer c.mu.RUnlock()
		return c.lk
	}
	c.mu.RUnlock()
	c.Refresh()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lk
}
