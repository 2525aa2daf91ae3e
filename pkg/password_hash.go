package pkg

import "golang.org/x/crypto/bcrypt"

const secretHashCost = 12

// HashSecret produces the bcrypt hash stored in config for shared secrets (e.g. the MCP secret).
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), secretHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckSecretHash(secret, hash string) bool {
	if secret == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
