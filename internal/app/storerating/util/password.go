package util

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword хэширует пароль через bcrypt со стандартной стоимостью.
// Все новые креденшлы проходят через эту функцию, в том числе
// перехэширование legacy-паролей bootstrap-админов при входе.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword сверяет пароль с bcrypt-хэшем.
// Для незахэшированного значения в колонке password_hash вернет false:
// сравнение с legacy-плейнтекстом делает AuthService отдельной веткой.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
