// Package registry stores erased values behind integer handles.
//
// A Table maps a Handle to a proj.Erased. The stored value keeps its
// identity, so a lookup projects it back to its static type with a checked
// conversion:
//
//	table := registry.NewTable()
//
//	h, err := registry.Put(table, alloc.Global{})
//	g, err := registry.Lookup[alloc.Global](table, h) // *proj.Typed[alloc.Global]
//	_, err = registry.Lookup[alloc.Counting](table, h) // *proj.MismatchError
//
// Handle 0 is never issued. Freed handles are reused.
//
// # Observers
//
// Observers are told when values enter and leave the table:
//
//	table.Subscribe(obs) // obs.OnRegistryEvent(registry.Event{...})
//
// # Cleanup
//
// Removing a value runs its Drop method when the stored type, or a pointer
// to it, implements Dropper. Clear and Close remove every value.
//
// Tables are single-owner and do no locking.
package registry
