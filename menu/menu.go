// Package menu holds the fixed restaurant menu: item names and their prices in
// minor currency units. The registry is filled at startup and only read after.
package menu

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

type Item struct {
	Name  string `yaml:"name" json:"name"`
	Price int64  `yaml:"price" json:"price"`
}

type Registry struct {
	mu    sync.RWMutex
	items map[string]int64
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[string]int64)}
}

// Default returns the menu the restaurant ships with.
func Default() *Registry {
	r := NewRegistry()
	r.AddItem("pizza", 1500)
	r.AddItem("burger", 500)
	r.AddItem("pasta", 1000)
	r.AddItem("fries", 300)
	return r
}

// AddItem registers name at price, replacing any previous price.
func (r *Registry) AddItem(name string, price int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[name] = price
}

// Price returns the registered price of name, or 0 for unknown items.
func (r *Registry) Price(name string) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[name]
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Items lists the menu sorted by name.
func (r *Registry) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Item, 0, len(r.items))
	for name, price := range r.items {
		out = append(out, Item{Name: name, Price: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type file struct {
	Items []Item `yaml:"items"`
}

// LoadFile builds a registry from a YAML document of the form:
//
//	items:
//	  - name: pizza
//	    price: 1500
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("menu: read %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("menu: parse: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("menu: no items defined")
	}

	r := NewRegistry()
	for _, item := range f.Items {
		if item.Name == "" {
			return nil, fmt.Errorf("menu: item without a name")
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("menu: negative price for %q", item.Name)
		}
		r.AddItem(item.Name, item.Price)
	}
	return r, nil
}
