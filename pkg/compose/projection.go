package compose

// Project returns a copy of the stack holding only the enabled services.
// depends_on and links entries pointing at services that did not survive are
// removed, so every reference in the result resolves inside the result. The
// source stack is never modified.
func Project(stack *StackDefinition, enablement EnablementMap) *StackDefinition {
	projected := stack.emptyCopy()

	for _, name := range stack.order {
		if !enablement.Enabled(name) {
			continue
		}
		projected.set(stack.services[name].clone())
	}

	// references are checked against the pruned set, not the source stack
	for _, name := range projected.order {
		svc := projected.services[name]
		svc.filterReferences(dependsOnKey, projected.Has)
		svc.filterReferences(linksKey, projected.Has)
	}

	return projected
}
