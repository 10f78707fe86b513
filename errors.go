package vfs

// UnknownClassError is returned when a serialized path refers to a class name which is not registered.
type UnknownClassError struct {
	Name string
}

func (e *UnknownClassError) Error() string {
	return "unable to find VFS class by name '" + e.Name + "'"
}

// EmptyPathError is returned when a path without elements is serialized or deserialized.
type EmptyPathError struct {
	Message string
}

func (e *EmptyPathError) Error() string {
	return e.Message
}
