// Package resource defines the descriptor that turns one entity type into a
// uniform HTTP resource. Every back-office entity is served by the same
// generic controller; what varies per entity lives here, as data.
package resource

// Descriptor declares how one entity type is exposed as a resource.
//
// Name feeds change-event names ("supplierCreated", "supplierUpdated",
// "supplierDeleted") and user-facing not-found messages. Path is the URL
// segment under /api.
type Descriptor struct {
	// Name is the lowerCamel resource name used in event names, e.g. "userRole"
	Name string
	// DisplayName is the human-readable name used in error messages, e.g. "User role"
	DisplayName string
	// Path is the URL segment under /api, e.g. "user-role"
	Path string
	// SoftDelete selects the delete policy: mark deleted_at instead of
	// destroying the row. Default list/get exclude marked records.
	SoftDelete bool
	// DefaultOrder is the SQL order applied when the caller gives none,
	// e.g. "created_at DESC"
	DefaultOrder string
	// Preloads lists associations expanded on reads (populate semantics)
	Preloads []string
	// Updatable whitelists the column names a PATCH may touch. Merge
	// semantics: absent fields stay untouched, present ones are written.
	Updatable []string
	// Searchable lists the text columns matched by the search query parameter
	Searchable []string
	// Sortable lists the columns accepted for order_by; anything else falls
	// back to DefaultOrder so callers cannot inject raw SQL
	Sortable []string
}

// EventName returns "<resource><Verb>" for this descriptor
func (d Descriptor) EventName(verb string) string {
	return d.Name + verb
}

// CanUpdate reports whether a column is in the PATCH whitelist
func (d Descriptor) CanUpdate(column string) bool {
	for _, f := range d.Updatable {
		if f == column {
			return true
		}
	}
	return false
}

// CanSort reports whether a column may be used for ordering
func (d Descriptor) CanSort(column string) bool {
	for _, f := range d.Sortable {
		if f == column {
			return true
		}
	}
	return false
}
