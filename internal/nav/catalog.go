package nav

// Catalog holds every component version's navigation menu, keyed by
// "component:version". Built by a single reducer over the classified
// navigation files, same as content.Catalog; no internal locking.
type Catalog struct {
	menus map[string][]*Tree
}

// NewCatalog creates an empty navigation catalog.
func NewCatalog() *Catalog {
	return &Catalog{menus: make(map[string][]*Tree)}
}

func menuKey(component, version string) string {
	return component + ":" + version
}

// AddTree inserts tree into (component, version)'s menu at the first
// position whose existing order is >= tree.Order, appending otherwise.
func (c *Catalog) AddTree(component, version string, tree *Tree) {
	key := menuKey(component, version)
	menu := c.menus[key]

	idx := len(menu)
	for i, existing := range menu {
		if existing.Order >= tree.Order {
			idx = i
			break
		}
	}

	menu = append(menu, nil)
	copy(menu[idx+1:], menu[idx:])
	menu[idx] = tree
	c.menus[key] = menu
}

// GetMenu returns (component, version)'s menu, or nil if it has none.
func (c *Catalog) GetMenu(component, version string) []*Tree {
	return c.menus[menuKey(component, version)]
}
