package authcore

// IsPermitted reports whether a caller holding callerRoles may invoke an
// operation requiring requiredRoles. The decision is a set intersection:
// holding any one required role suffices. Anonymous-allowed operations
// bypass this check entirely and are evaluated by the dispatch layer
// before it is reached.
func IsPermitted(callerRoles, requiredRoles []string) bool {
	for _, have := range callerRoles {
		for _, want := range requiredRoles {
			if have == want {
				return true
			}
		}
	}
	return false
}
