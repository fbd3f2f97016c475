package ecs

import "unsafe"

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// dataPointer returns the pointer boxed in a Component without a type switch.
func dataPointer(component Component) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&component)).data
}
