package securelogin

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type bcryptHasher struct {
	cost int
}

// NewPasswordHasher returns a bcrypt backed PasswordHasher. The per-user
// salt is prepended to the password before hashing, so a hash only
// verifies against the salt it was derived with.
func NewPasswordHasher() PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

func (b *bcryptHasher) GenerateSalt() string {
	return uuid.NewString()
}

func (b *bcryptHasher) Encrypt(password, salt string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(salt+password), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b *bcryptHasher) Verify(hash, password, salt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(salt+password)) == nil
}
