package alias

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Directory maps human-readable names to account ids. It is loaded once at
// startup from a YAML file of the form:
//
//	12345678:
//	  - somebody
//	  - 某人
type Directory struct {
	mu     sync.RWMutex
	byName map[string]int64
}

func NewDirectory() *Directory {
	return &Directory{byName: make(map[string]int64)}
}

// Load reads the alias file. A missing file is an error; the caller decides
// whether to continue with an empty directory.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	var raw map[int64][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}

	d := NewDirectory()
	count := 0
	for id, names := range raw {
		for _, name := range names {
			d.byName[name] = id
			count++
		}
	}
	log.Printf("[INFO] loaded %d alias entries from %s", count, path)
	return d, nil
}

// Resolve turns a name into an account id: alias hit first, then an
// "@12345" mention, then a bare numeric id. Returns 0 for empty or
// unparseable input.
func (d *Directory) Resolve(name string) int64 {
	if name == "" {
		return 0
	}

	d.mu.RLock()
	id, ok := d.byName[name]
	d.mu.RUnlock()
	if ok {
		return id
	}

	n, _ := strconv.ParseInt(strings.TrimPrefix(name, "@"), 10, 64)
	return n
}

// Len reports the number of alias entries.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byName)
}
