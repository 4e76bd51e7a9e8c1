package models

// PreRegistration is a single-use enrollment voucher seeded by an
// administrative process. Cedula is the national ID and is unique.
//
// IsUsed transitions false→true exactly once, inside the same transaction
// that creates the student account redeeming it.
type PreRegistration struct {
	ID       int64
	Cedula   string
	FullName string
	IsUsed   bool
}
