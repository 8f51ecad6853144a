package types

// Service is an action service addressable from workflow tasks.
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}
