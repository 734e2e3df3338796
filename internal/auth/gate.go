package auth

// CheckPermission fails with InvalidClaims when the permissions claim is
// absent, null or empty and with Forbidden when permission is not granted.
func CheckPermission(permission string, claims *ClaimSet) error {
	if claims == nil || claims.State == PermissionsAbsent {
		return errPermissionsClaim("Permissions not included in JWT.")
	}
	if claims.State == PermissionsNull || len(claims.Permissions) == 0 {
		return errPermissionsClaim("Permissions field is null in JWT payload")
	}
	if !claims.HasPermission(permission) {
		return errForbidden()
	}
	return nil
}
