//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=skipstore
package skipstore

type (
	// Store persists the "skip remaining scenarios" flag across runs.
	Store interface {
		Load() (bool, error)
		Save(skip bool) error
	}
)
