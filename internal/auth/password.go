package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the work factor the service has always used for
// stored credentials.
const DefaultBcryptCost = 10

// HashPassword hashes a plaintext password with the configured cost. The salt
// and cost are self-encoded in the result.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value in constant
// time.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
