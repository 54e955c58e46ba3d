package auth

import "sort"

const (
	PermViewItem          = "view_item"
	PermChangeItem        = "change_item"
	PermViewBatch         = "view_batch"
	PermViewLocation      = "view_location"
	PermAddLocation       = "add_location"
	PermViewBatchLocation = "view_batchlocation"
	PermAddMovement       = "add_movement"
	PermViewMovement      = "view_movement"
	PermViewReport        = "view_report"
	PermImportItem        = "import_item"
)

const (
	GroupManagers  = "managers"
	GroupOperators = "operators"
)

// AllPermissions lists every permission known to the application.
var AllPermissions = []string{
	PermViewItem,
	PermChangeItem,
	PermViewBatch,
	PermViewLocation,
	PermAddLocation,
	PermViewBatchLocation,
	PermAddMovement,
	PermViewMovement,
	PermViewReport,
	PermImportItem,
}

// Groups maps a group name to its permissions. Managers hold everything.
var Groups = map[string][]string{
	GroupManagers: AllPermissions,
	GroupOperators: {
		PermViewItem,
		PermChangeItem,
		PermViewBatch,
		PermViewLocation,
		PermViewBatchLocation,
		PermAddMovement,
		PermViewMovement,
	},
}

// Allowed reports whether group grants perm.
func Allowed(group, perm string) bool {
	for _, p := range Groups[group] {
		if p == perm {
			return true
		}
	}
	return false
}

// GroupNames returns the known groups sorted by name.
func GroupNames() []string {
	names := make([]string, 0, len(Groups))
	for g := range Groups {
		names = append(names, g)
	}
	sort.Strings(names)
	return names
}

// ValidGroup reports whether name is a known group.
func ValidGroup(name string) bool {
	_, ok := Groups[name]
	return ok
}
