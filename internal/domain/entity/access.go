package entity

// IsPrivileged gates product creation: the user must be logged in and be staff or superuser.
func IsPrivileged(u *User) bool {
	return u.IsAuthenticated() && (u.IsStaff || u.IsSuperuser)
}

// CanEditProduct gates product editing: only the product's author may edit it,
// whatever their staff status.
func CanEditProduct(u *User, p *Product) bool {
	if !u.IsAuthenticated() || p == nil || p.CreatedByID == nil {
		return false
	}

	return *p.CreatedByID == u.ID
}
