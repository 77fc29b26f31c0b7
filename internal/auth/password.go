package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a raw password with the given bcrypt cost.
func HashPassword(pw string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

// CheckPassword reports whether pw matches hash. It fails closed: any
// error, including a malformed hash, counts as a mismatch. bcrypt's
// compare is constant-time with respect to the hash contents.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
